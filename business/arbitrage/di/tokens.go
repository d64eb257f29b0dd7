// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/eco-market-bot/business/arbitrage/app"
	"github.com/fd1az/eco-market-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ArbitrageService = di.NewToken[*app.Service]("arbitrage.ArbitrageService")
	Engine           = di.NewToken[*app.Engine]("arbitrage.Engine")
)

// Helper functions for type-safe access
func GetArbitrageService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, ArbitrageService)
}

func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}
