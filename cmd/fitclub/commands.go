package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitclub-go/internal/app"
	"fitclub-go/internal/config"
	"fitclub-go/internal/db"
	"fitclub-go/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Fitness club membership service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the sample catalogue into an empty database",
			RunE: func(cmd *cobra.Command, args []string) error {
				return seed(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "import-members <file.csv>",
			Short: "Import members from a CSV file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return importMembers(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func bootstrap(log logger.Logger, adjust func(*config.Config)) (*app.App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(&cfg)
	}
	return app.New(cfg, log)
}

func serve(parent context.Context) error {
	log := logger.NewFromEnv()
	log.Info("app: starting", "version", Version)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("app: config failed", "err", err)
		return err
	}
	application, err := app.New(cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("app: close failed", "err", err)
		}
	}()

	if cfg.SeedOnStart {
		report, err := application.Seed(ctx)
		if err != nil {
			log.Critical("app: seed failed", "err", err)
			return err
		}
		logSeedReport(log, report)
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		if runErr == nil {
			runErr = err
		}
	}

	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}

func migrate() error {
	log := logger.NewFromEnv()
	application, err := bootstrap(log, func(cfg *config.Config) {
		cfg.DB.AutoMigrate = false
	})
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Migrate()
}

func seed(ctx context.Context) error {
	log := logger.NewFromEnv()
	application, err := bootstrap(log, nil)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.Seed(ctx)
	if err != nil {
		return err
	}
	logSeedReport(log, report)
	return nil
}

func importMembers(ctx context.Context, path string) error {
	log := logger.NewFromEnv()
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	application, err := bootstrap(log, nil)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.Services().Transfer.ImportMembers(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("import %s: %d imported, %d failed\n", report.ID, report.Imported, report.Failed)
	for _, rowErr := range report.Errors {
		fmt.Printf("  line %d (%s): %s\n", rowErr.Line, rowErr.Email, rowErr.Message)
	}
	return nil
}

func logSeedReport(log logger.Logger, report db.SeedReport) {
	if report.Skipped {
		return
	}
	log.Info("app: seeded",
		"plans", report.Plans,
		"trainers", report.Trainers,
		"members", report.Members,
		"sessions", report.Sessions,
		"bookings", report.Bookings,
	)
}
