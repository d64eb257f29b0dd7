// Package arbitrage implements the arbitrage bounded context: best-pair,
// pairwise and free-item trade discovery, plus deal monitoring.
package arbitrage

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/arbitrage/app"
	arbDI "github.com/fd1az/eco-market-bot/business/arbitrage/di"
	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDI "github.com/fd1az/eco-market-bot/business/market/di"
	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/di"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
	"github.com/fd1az/eco-market-bot/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		return app.NewEngine(EngineConfigFromConfig(cfg), log)
	})

	di.RegisterToken(c, arbDI.ArbitrageService, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		mm, _ := sr.Get(monolith.ServiceMetrics).(*metrics.MarketMetrics)
		return app.NewService(marketDI.GetMarketService(sr), arbDI.GetEngine(sr), mm, log)
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	mono.Logger().Info(ctx, "arbitrage module started",
		"min_total_profit", cfg.Arbitrage.MinTotalProfit,
		"epsilon", cfg.Arbitrage.Epsilon,
		"balance_aware", cfg.Arbitrage.BalanceAware,
		"good_deal_threshold", cfg.Arbitrage.GoodDealThreshold)
	return nil
}

// EngineConfigFromConfig maps arbitrage settings to the engine policy.
func EngineConfigFromConfig(cfg *config.Config) app.EngineConfig {
	return app.EngineConfig{
		MinTotalProfit:  cfg.Arbitrage.MinTotalProfitDecimal(),
		Epsilon:         cfg.Arbitrage.EpsilonDecimal(),
		LiquidityMargin: cfg.Arbitrage.LiquidityMarginDecimal(),
		BalanceAware:    cfg.Arbitrage.BalanceAware,
		Categories:      domain.DefaultCategoryRules(),
	}
}
