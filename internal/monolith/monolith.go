// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/di"
	"github.com/fd1az/eco-market-bot/internal/health"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
)

// Service names for global registrations.
const (
	ServiceConfig        = "config"
	ServiceLogger        = "logger"
	ServiceMetrics       = "metrics"
	ServiceSourceTracker = "sourceTracker"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Metrics() *metrics.MarketMetrics
	SourceTracker() *health.SourceTracker
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config    *config.Config
	logger    logger.LoggerInterface
	metrics   *metrics.MarketMetrics
	tracker   *health.SourceTracker
	container di.Container
}

// New creates a new Monolith instance. mm may be nil when telemetry is off.
func New(cfg *config.Config, log logger.LoggerInterface, mm *metrics.MarketMetrics) *app {
	tracker := health.NewSourceTracker()
	container := di.NewContainer()

	container.Register(ServiceConfig, cfg)
	container.Register(ServiceLogger, log)
	container.Register(ServiceMetrics, mm)
	container.Register(ServiceSourceTracker, tracker)

	return &app{
		config:    cfg,
		logger:    log,
		metrics:   mm,
		tracker:   tracker,
		container: container,
	}
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Metrics() *metrics.MarketMetrics {
	return a.metrics
}

func (a *app) SourceTracker() *health.SourceTracker {
	return a.tracker
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close releases shared resources.
func (a *app) Close() error {
	return nil
}
