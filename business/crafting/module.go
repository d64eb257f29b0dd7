// Package crafting implements the crafting bounded context: recipe resolution,
// demand-cascaded crafting profit and the profession ranking.
package crafting

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/crafting/app"
	craftingDI "github.com/fd1az/eco-market-bot/business/crafting/di"
	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	"github.com/fd1az/eco-market-bot/business/crafting/infra/ecoapi"
	marketDI "github.com/fd1az/eco-market-bot/business/market/di"
	"github.com/fd1az/eco-market-bot/internal/config"
	"github.com/fd1az/eco-market-bot/internal/di"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
	"github.com/fd1az/eco-market-bot/internal/monolith"
)

// Module implements the crafting bounded context.
type Module struct{}

// RegisterServices registers all crafting services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, craftingDI.RecipeSource, func(sr di.ServiceRegistry) app.RecipeSource {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)

		client, err := ecoapi.NewClient(ecoapi.Config{
			BaseURL:      cfg.API.BaseURL,
			RecipesPath:  cfg.API.RecipesPath,
			Timeout:      cfg.API.Timeout,
			RateLimitRPM: cfg.API.RateLimitRPM,
		}, log)
		if err != nil {
			panic("failed to create eco recipes client: " + err.Error())
		}
		return ecoapi.NewCachedRecipeSource(client, cfg.API.RecipeCacheTTL, log)
	})

	di.RegisterToken(c, craftingDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		return app.NewEngine(EngineConfigFromConfig(cfg), log)
	})

	di.RegisterToken(c, craftingDI.CraftingService, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		mm, _ := sr.Get(monolith.ServiceMetrics).(*metrics.MarketMetrics)
		return app.NewService(
			craftingDI.GetRecipeSource(sr),
			marketDI.GetMarketService(sr),
			craftingDI.GetEngine(sr),
			mm,
			log,
		)
	})

	return nil
}

// Startup initializes the crafting module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	mono.Logger().Info(ctx, "crafting module started",
		"cascade", cfg.Crafting.CascadeMode,
		"conservative", cfg.Crafting.Conservative,
		"recipe_cache_ttl", cfg.API.RecipeCacheTTL.String())
	return nil
}

// EngineConfigFromConfig maps crafting settings to the engine policy.
func EngineConfigFromConfig(cfg *config.Config) app.EngineConfig {
	return app.EngineConfig{
		Resolver: app.ResolverConfig{
			Tags:                  domain.DefaultTags(),
			Conservative:          cfg.Crafting.Conservative,
			MinIngredientQuantity: cfg.Crafting.MinIngredientQuantity,
			MinRecipeBatches:      cfg.Crafting.MinRecipeBatches,
		},
		MinUnitProfit:       cfg.Crafting.MinUnitProfitDecimal(),
		MinTotalProfit:      cfg.Crafting.MinTotalProfitDecimal(),
		MinProfessionProfit: cfg.Crafting.MinProfessionProfitDecimal(),
		Cascade:             domain.ParseCascadeMode(cfg.Crafting.CascadeMode),
	}
}
