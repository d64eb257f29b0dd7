// Package di contains dependency injection tokens for the crafting context.
package di

import (
	"github.com/fd1az/eco-market-bot/business/crafting/app"
	"github.com/fd1az/eco-market-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	CraftingService = di.NewToken[*app.Service]("crafting.CraftingService")
)

// Private dependency tokens - internal to crafting module
var (
	RecipeSource = di.NewToken[app.RecipeSource]("crafting:recipeSource")
	Engine       = di.NewToken[*app.Engine]("crafting:engine")
)

// Helper functions for type-safe access
func GetCraftingService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, CraftingService)
}

func GetRecipeSource(c di.ServiceRegistry) app.RecipeSource {
	return di.GetToken(c, RecipeSource)
}

func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}
