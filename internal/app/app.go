// Package app assembles the calculator from configuration and serves it.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/controllers/restserver"
	"github.com/chrissnell/h2calc/internal/database"
	"github.com/chrissnell/h2calc/internal/hydrogen"
	"github.com/chrissnell/h2calc/internal/log"
	"github.com/chrissnell/h2calc/pkg/config"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// NewCalculator loads the configured dataset and returns a calculator over it
func NewCalculator(ctx context.Context, cfg *config.ConfigData, logger *zap.SugaredLogger) (*hydrogen.Calculator, error) {
	provider, err := database.NewProvider(cfg.Dataset, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer provider.Close()

	ds, err := provider.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}

	return hydrogen.NewCalculator(ds, logger, hydrogen.WithWindEnvelope(cfg.Model.EnforceWindEnvelope))
}

// NewSession returns a session with the configured defaults applied
func NewSession(cfg *config.ConfigData) *hydrogen.Session {
	session := hydrogen.NewSession()
	session.ApplyDefaults(
		hydrogen.WindParams{
			HeightM: cfg.Defaults.Wind.Height,
			RadiusM: cfg.Defaults.Wind.Radius,
		},
		hydrogen.SolarParams{
			PanelAreaM2: cfg.Defaults.Solar.PanelArea,
			Efficiency:  cfg.Defaults.Solar.Efficiency,
		},
	)
	return session
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	calc, err := NewCalculator(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	if a.cfg.Model.EnforceWindEnvelope {
		log.Info("wind turbine output limited to the 3-25 m/s envelope")
	}

	ctrl := restserver.NewController(ctx, &wg, a.cfg.REST, calc, NewSession(a.cfg), a.logger)
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
