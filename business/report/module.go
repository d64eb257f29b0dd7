// Package report implements the report bounded context: rendering engine
// results and delivering them, chunked, to the terminal and chat platforms.
package report

import (
	"context"

	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
	arbDI "github.com/fd1az/eco-market-bot/business/arbitrage/di"
	arbDomain "github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDI "github.com/fd1az/eco-market-bot/business/market/di"
	"github.com/fd1az/eco-market-bot/business/report/app"
	reportDI "github.com/fd1az/eco-market-bot/business/report/di"
	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/di"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
	"github.com/fd1az/eco-market-bot/internal/monolith"
)

// Module implements the report bounded context.
type Module struct{}

// RegisterServices registers all report services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, reportDI.Formatter, func(sr di.ServiceRegistry) *app.Formatter {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		return app.NewFormatter(FormatterConfigFromConfig(cfg))
	})

	di.RegisterToken(c, reportDI.ReportService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		mm, _ := sr.Get(monolith.ServiceMetrics).(*metrics.MarketMetrics)
		return app.NewService(
			reportDI.GetFormatter(sr),
			arbDI.GetArbitrageService(sr),
			cfg.Report.ChunkSize,
			mm,
			log,
		)
	})

	di.RegisterToken(c, reportDI.DealMonitor, func(sr di.ServiceRegistry) *arbApp.Detector {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		return arbApp.NewDetector(
			marketDI.GetMarketService(sr),
			arbDI.GetEngine(sr),
			reportDI.GetReportService(sr),
			cfg.Arbitrage.GoodDealThresholdDecimal(),
			log,
		)
	})

	return nil
}

// Startup initializes the report module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	mono.Logger().Info(ctx, "report module started",
		"chunk_size", cfg.Report.ChunkSize,
		"discord", cfg.Discord.Enabled(),
		"telegram", cfg.Telegram.Enabled())
	return nil
}

// FormatterConfigFromConfig maps report settings to the formatter limits.
func FormatterConfigFromConfig(cfg *config.Config) app.FormatterConfig {
	fc := app.DefaultFormatterConfig()
	fc.TopN = cfg.Report.TopN
	fc.CraftingTopN = cfg.Report.CraftingTopN
	fc.CategoryTopN = cfg.Report.CategoryTopN
	fc.Categories = arbDomain.DefaultCategoryRules()
	fc.GoodDealThreshold = cfg.Arbitrage.GoodDealThresholdDecimal()
	fc.MonitorInterval = cfg.Schedule.MonitorInterval
	return fc
}
