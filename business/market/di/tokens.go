// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/fd1az/eco-market-bot/business/market/app"
	"github.com/fd1az/eco-market-bot/business/market/infra/filestore"
	"github.com/fd1az/eco-market-bot/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.Service]("market.MarketService")
)

// Private dependency tokens - internal to market module
var (
	StoreSource = di.NewToken[app.StoreSource]("market:storeSource")
	FileStore   = di.NewToken[*filestore.Store]("market:fileStore")
	Builder     = di.NewToken[*app.Builder]("market:builder")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, MarketService)
}

func GetStoreSource(c di.ServiceRegistry) app.StoreSource {
	return di.GetToken(c, StoreSource)
}

func GetFileStore(c di.ServiceRegistry) *filestore.Store {
	return di.GetToken(c, FileStore)
}

func GetBuilder(c di.ServiceRegistry) *app.Builder {
	return di.GetToken(c, Builder)
}
