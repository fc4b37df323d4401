package app

import (
	"context"
	"errors"
	"net/http"

	"fitclub-go/internal/config"
	"fitclub-go/internal/db"
	dashboarddomain "fitclub-go/internal/domain/dashboard"
	membersdomain "fitclub-go/internal/domain/members"
	plansdomain "fitclub-go/internal/domain/plans"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	trainersdomain "fitclub-go/internal/domain/trainers"
	transferdomain "fitclub-go/internal/domain/transfer"
	"fitclub-go/internal/metrics"
	"fitclub-go/internal/repository/inmemory"
	dashboardrepo "fitclub-go/internal/repository/postgres/dashboard"
	membersrepo "fitclub-go/internal/repository/postgres/members"
	plansrepo "fitclub-go/internal/repository/postgres/plans"
	sessionsrepo "fitclub-go/internal/repository/postgres/sessions"
	trainersrepo "fitclub-go/internal/repository/postgres/trainers"
	"fitclub-go/internal/transport/httpserver"
	"fitclub-go/internal/transport/httpserver/handler"
	"fitclub-go/pkg/logger"
	"gorm.io/gorm"
)

var ErrMigrationsNeedPostgres = errors.New("migrations require STORAGE=postgres")

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	services   handler.Services
	metrics    *metrics.Metrics
	httpServer *http.Server
}

type repositories struct {
	members   membersdomain.Repository
	plans     plansdomain.Repository
	trainers  trainersdomain.Repository
	sessions  sessionsdomain.Repository
	dashboard dashboarddomain.Repository
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	repos, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing services")
	plans := plansdomain.NewServiceWithCache(repos.plans, inmemory.NewPlansCache(), cfg.PlansCacheTTL)
	trainers := trainersdomain.NewService(repos.trainers)
	members := membersdomain.NewService(repos.members, plans)
	sessions := sessionsdomain.NewService(repos.sessions, trainers)
	a.services = handler.Services{
		Members:  members,
		Plans:    plans,
		Trainers: trainers,
		Sessions: sessions,
		Dashboard: dashboarddomain.NewService(repos.dashboard, dashboarddomain.Growth{
			Members:  cfg.Dashboard.MemberGrowth,
			Sessions: cfg.Dashboard.SessionGrowth,
			Revenue:  cfg.Dashboard.RevenueGrowth,
		}),
		Transfer: transferdomain.NewService(members, sessions, log),
	}

	if cfg.MetricsEnabled {
		a.metrics = metrics.New()
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handler.New(a.services, a.metrics, log), a.metrics)
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) openStorage() (repositories, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.log.Info("app: using in-memory storage")
		store := inmemory.NewStore()
		return repositories{
			members:   store.Members(),
			plans:     store.Plans(),
			trainers:  store.Trainers(),
			sessions:  store.Sessions(),
			dashboard: store.Dashboard(),
		}, nil
	}

	a.log.Info("app: initializing database")
	conn, err := db.NewPostgres(a.cfg.DB, a.log)
	if err != nil {
		return repositories{}, err
	}
	a.db = conn

	if a.cfg.DB.AutoMigrate {
		if err := db.Migrate(conn, a.log); err != nil {
			_ = db.Close(conn)
			return repositories{}, err
		}
	}

	return repositories{
		members:   membersrepo.NewPostgres(conn),
		plans:     plansrepo.NewPostgres(conn),
		trainers:  trainersrepo.NewPostgres(conn),
		sessions:  sessionsrepo.NewPostgres(conn),
		dashboard: dashboardrepo.NewPostgres(conn),
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Services() handler.Services {
	return a.services
}

func (a *App) Migrate() error {
	if a.db == nil {
		return ErrMigrationsNeedPostgres
	}
	return db.Migrate(a.db, a.log)
}

func (a *App) Seed(ctx context.Context) (db.SeedReport, error) {
	catalogue, err := db.DefaultCatalogue()
	if err != nil {
		return db.SeedReport{}, err
	}

	seeder := db.Seeder{
		Plans:    a.services.Plans,
		Trainers: a.services.Trainers,
		Members:  a.services.Members,
		Sessions: a.services.Sessions,
		Log:      a.log,
	}
	return seeder.Seed(ctx, catalogue)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}
