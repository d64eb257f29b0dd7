package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fd1az/eco-market-bot/business/arbitrage"
	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
	arbDI "github.com/fd1az/eco-market-bot/business/arbitrage/di"
	"github.com/fd1az/eco-market-bot/business/crafting"
	craftApp "github.com/fd1az/eco-market-bot/business/crafting/app"
	craftDI "github.com/fd1az/eco-market-bot/business/crafting/di"
	"github.com/fd1az/eco-market-bot/business/market"
	marketApp "github.com/fd1az/eco-market-bot/business/market/app"
	marketDI "github.com/fd1az/eco-market-bot/business/market/di"
	"github.com/fd1az/eco-market-bot/business/report"
	reportApp "github.com/fd1az/eco-market-bot/business/report/app"
	reportDI "github.com/fd1az/eco-market-bot/business/report/di"
	"github.com/fd1az/eco-market-bot/internal/apm"
	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/health"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
	"github.com/fd1az/eco-market-bot/internal/monolith"
)

// application is the part of the monolith the commands drive.
type application interface {
	monolith.Monolith
	RegisterModules(modules ...monolith.Module) error
	StartModules(ctx context.Context, modules ...monolith.Module) error
	Close() error
}

// runtime is a configured, registered application for one command.
type runtime struct {
	cfg     *config.Config
	log     logger.LoggerInterface
	mono    application
	modules []monolith.Module

	traceProvider  apm.TraceProvider
	metricProvider metrics.MetricProvider
	promServer     *metrics.PrometheusServer
}

// bootstrap loads configuration, sets up logging and telemetry and registers
// every module. Nothing touches the network until start.
func bootstrap(ctx context.Context, opts *rootOptions, tuiMode bool) (*runtime, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	cfg.App.TUIMode = tuiMode

	// In TUI mode, suppress logs (discard output)
	var out io.Writer = os.Stderr
	if tuiMode {
		out = io.Discard
	}
	log := logger.New(out, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, apm.TraceIDFromContext)

	rt := &runtime{
		cfg:           cfg,
		log:           log,
		traceProvider: apm.NewEmptyTraceProvider(),
	}

	var mm *metrics.MarketMetrics
	if cfg.Telemetry.Enabled {
		mm, err = rt.initTelemetry(ctx)
		if err != nil {
			return nil, err
		}
	}

	mono := monolith.New(cfg, log, mm)
	rt.mono = mono

	// Define modules in dependency order
	rt.modules = []monolith.Module{
		&market.Module{},    // snapshots, used by everything else
		&crafting.Module{},  // recipes
		&arbitrage.Module{}, // trade discovery
		&report.Module{},    // formatting and delivery
	}
	if err := mono.RegisterModules(rt.modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}

	log.Info(ctx, "marketbot configured",
		"version", version,
		"environment", cfg.App.Environment,
		"base_url", cfg.API.BaseURL)
	return rt, nil
}

func (rt *runtime) initTelemetry(ctx context.Context) (*metrics.MarketMetrics, error) {
	tel := rt.cfg.Telemetry
	serviceName := tel.ServiceName
	if serviceName == "" {
		serviceName = rt.cfg.App.Name
	}

	rt.traceProvider = apm.NewTraceProvider(
		apm.WithServiceName(serviceName),
		apm.WithProvider(apm.ParseProvider(tel.Provider), apm.Endpoint{
			URL:     tel.OTLPEndpoint,
			Headers: apm.ParseHeaders(tel.OTLPHeaders),
		}, rt.log),
	)

	metricOpts := []metrics.OptionFn{
		metrics.WithServiceName(serviceName),
		metrics.WithVersion(version),
		metrics.WithPrometheus(),
	}
	if apm.ParseProvider(tel.Provider) == apm.OTLPGRPCProvider && tel.OTLPEndpoint != "" {
		metricOpts = append(metricOpts, metrics.WithOTLP(tel.OTLPEndpoint, apm.ParseHeaders(tel.OTLPHeaders), false))
	}
	mp, err := metrics.NewMetricProvider(ctx, metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric provider: %w", err)
	}
	rt.metricProvider = mp

	port := tel.PrometheusPort
	if port == 0 {
		port = 9090
	}
	rt.promServer = metrics.NewPrometheusServer(port)
	errCh := make(chan error, 1)
	rt.promServer.Start(errCh)
	go func() {
		select {
		case err := <-errCh:
			rt.log.Warn(ctx, "prometheus metrics server stopped", "error", err)
		case <-ctx.Done():
		}
	}()
	rt.log.Info(ctx, "telemetry initialized", "provider", tel.Provider, "prometheus_port", port)

	mm, err := metrics.NewMarketMetrics(rt.metricProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return mm, nil
}

// start runs every module's startup hook.
func (rt *runtime) start(ctx context.Context) error {
	if err := rt.mono.StartModules(ctx, rt.modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}
	return nil
}

// close releases the monolith and flushes telemetry.
func (rt *runtime) close() {
	if err := rt.mono.Close(); err != nil {
		rt.log.Warn(context.Background(), "error closing application", "error", err)
	}
	if err := rt.traceProvider.Stop(); err != nil {
		rt.log.Warn(context.Background(), "error stopping trace provider", "error", err)
	}
	if rt.metricProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.metricProvider.Shutdown(ctx); err != nil {
			rt.log.Warn(ctx, "error stopping metric provider", "error", err)
		}
		if err := rt.promServer.Stop(ctx); err != nil {
			rt.log.Warn(ctx, "error stopping metrics server", "error", err)
		}
	}
}

// startHealth serves /health, /ready and /live. Both the check and the
// readiness gate follow the last market fetch.
// The returned func stops the server.
func (rt *runtime) startHealth(ctx context.Context) func() {
	port := rt.cfg.App.HealthPort
	if port == 0 {
		return func() {}
	}

	srv := health.NewServer(port, version)
	tracker := rt.mono.SourceTracker()
	srv.RegisterCheck("market_data", tracker.Check)
	srv.RegisterReadiness("market_data", tracker.Ready)

	errCh := make(chan error, 1)
	if err := srv.Start(errCh); err != nil {
		rt.log.Warn(ctx, "failed to start health server", "error", err)
		return func() {}
	}
	go func() {
		select {
		case err := <-errCh:
			rt.log.Warn(ctx, "health server stopped", "error", err)
		case <-ctx.Done():
		}
	}()
	rt.log.Info(ctx, "health server started", "port", port)

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(stopCtx)
	}
}

func (rt *runtime) market() *marketApp.Service {
	return marketDI.GetMarketService(rt.mono.Services())
}

func (rt *runtime) arbitrage() *arbApp.Service {
	return arbDI.GetArbitrageService(rt.mono.Services())
}

func (rt *runtime) crafting() *craftApp.Service {
	return craftDI.GetCraftingService(rt.mono.Services())
}

func (rt *runtime) reports() *reportApp.Service {
	return reportDI.GetReportService(rt.mono.Services())
}

func (rt *runtime) dealMonitor() *arbApp.Detector {
	return reportDI.GetDealMonitor(rt.mono.Services())
}

// withRuntime bootstraps and starts the application around fn.
func withRuntime(ctx context.Context, opts *rootOptions, fn func(ctx context.Context, rt *runtime) error) error {
	rt, err := bootstrap(ctx, opts, false)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.start(ctx); err != nil {
		return err
	}
	return fn(ctx, rt)
}
