package handler

import (
	"time"

	dashboarddomain "fitclub-go/internal/domain/dashboard"
	membersdomain "fitclub-go/internal/domain/members"
	plansdomain "fitclub-go/internal/domain/plans"
	sessionsdomain "fitclub-go/internal/domain/sessions"
	trainersdomain "fitclub-go/internal/domain/trainers"
	transferdomain "fitclub-go/internal/domain/transfer"
	"fitclub-go/internal/metrics"
	"fitclub-go/pkg/logger"
)

type Services struct {
	Members   *membersdomain.Service
	Plans     *plansdomain.Service
	Trainers  *trainersdomain.Service
	Sessions  *sessionsdomain.Service
	Dashboard *dashboarddomain.Service
	Transfer  *transferdomain.Service
}

type Handlers struct {
	Members   *membersdomain.Service
	Plans     *plansdomain.Service
	Trainers  *trainersdomain.Service
	Sessions  *sessionsdomain.Service
	Dashboard *dashboarddomain.Service
	Transfer  *transferdomain.Service

	metrics *metrics.Metrics
	log     logger.Logger
	now     func() time.Time
}

func New(services Services, m *metrics.Metrics, log logger.Logger) *Handlers {
	return &Handlers{
		Members:   services.Members,
		Plans:     services.Plans,
		Trainers:  services.Trainers,
		Sessions:  services.Sessions,
		Dashboard: services.Dashboard,
		Transfer:  services.Transfer,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}
