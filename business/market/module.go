// Package market implements the market bounded context: fetching store listings
// and indexing them into per-run snapshots.
package market

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/market/app"
	marketDI "github.com/fd1az/eco-market-bot/business/market/di"
	"github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/business/market/infra/ecoapi"
	"github.com/fd1az/eco-market-bot/business/market/infra/filestore"
	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/di"
	"github.com/fd1az/eco-market-bot/internal/health"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
	"github.com/fd1az/eco-market-bot/internal/monolith"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, marketDI.StoreSource, func(sr di.ServiceRegistry) app.StoreSource {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)

		client, err := ecoapi.NewClient(ecoapi.Config{
			BaseURL:      cfg.API.BaseURL,
			StoresPath:   cfg.API.StoresPath,
			Timeout:      cfg.API.Timeout,
			RateLimitRPM: cfg.API.RateLimitRPM,
		}, log)
		if err != nil {
			panic("failed to create eco stores client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, marketDI.FileStore, func(sr di.ServiceRegistry) *filestore.Store {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		return filestore.New(cfg.API.FallbackFile)
	})

	di.RegisterToken(c, marketDI.Builder, func(sr di.ServiceRegistry) *app.Builder {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		return app.NewBuilder(PolicyFromConfig(cfg), log)
	})

	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		mm, _ := sr.Get(monolith.ServiceMetrics).(*metrics.MarketMetrics)
		tracker := sr.Get(monolith.ServiceSourceTracker).(*health.SourceTracker)

		files := marketDI.GetFileStore(sr)
		opts := []app.ServiceOption{
			app.WithWriter(files),
			app.WithSourceTracker(tracker),
			app.WithMetrics(mm),
		}
		if cfg.API.FallbackFile != "" {
			opts = append(opts, app.WithFallback(files))
		}

		return app.NewService(marketDI.GetStoreSource(sr), marketDI.GetBuilder(sr), log, opts...)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	mono.Logger().Info(ctx, "market module started",
		"base_url", cfg.API.BaseURL,
		"fallback_file", cfg.API.FallbackFile,
		"currencies", cfg.Market.Currencies,
		"excluded_buyers", cfg.Market.ExcludedBuyerStores)
	return nil
}

// PolicyFromConfig maps market settings to a snapshot policy.
func PolicyFromConfig(cfg *config.Config) domain.Policy {
	return domain.Policy{
		ExcludedBuyerStores:   cfg.Market.ExcludedBuyerStores,
		Currencies:            cfg.Market.Currencies,
		AllowZeroPriceSellers: cfg.Market.AllowZeroPriceSellers,
	}
}
