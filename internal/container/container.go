// Package container provides dependency injection.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finopsmind/costmeter/internal/config"
	"github.com/finopsmind/costmeter/internal/costclient"
	"github.com/finopsmind/costmeter/internal/jobs"
	"github.com/finopsmind/costmeter/internal/session"
)

// SweepJobName names the idle session sweep.
const SweepJobName = "session-sweep"

// Container holds all application dependencies.
type Container struct {
	cfg       *config.Config
	logger    *slog.Logger
	client    *costclient.Client
	sessions  *session.Store
	scheduler *jobs.Scheduler
}

// New creates a new dependency container.
func New(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		cfg:    cfg,
		logger: logger,
	}

	c.client = costclient.NewClient(cfg.CostService, logger)
	logger.Info("cost service client initialized", "url", cfg.CostService.URL, "timeout", cfg.CostService.Timeout)

	c.sessions = session.NewStore(cfg.Session.IdleTimeout, logger)

	c.scheduler = jobs.NewScheduler(logger)
	if err := c.scheduler.Register(SweepJobName, cfg.Session.SweepSchedule, time.Minute, c.sessions.Sweep); err != nil {
		return nil, fmt.Errorf("failed to register session sweep: %w", err)
	}

	return c, nil
}

// Start starts background jobs.
func (c *Container) Start(ctx context.Context) error {
	c.scheduler.Start()
	return nil
}

// Stop stops background jobs.
func (c *Container) Stop(ctx context.Context) error {
	return c.scheduler.Stop(ctx)
}

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config { return c.cfg }

// Logger returns the application logger.
func (c *Container) Logger() *slog.Logger { return c.logger }

// CostClient returns the cost service client.
func (c *Container) CostClient() *costclient.Client { return c.client }

// Sessions returns the session store.
func (c *Container) Sessions() *session.Store { return c.sessions }

// Scheduler returns the job scheduler.
func (c *Container) Scheduler() *jobs.Scheduler { return c.scheduler }
