package app

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
)

// RecipeSource supplies the recipe catalog.
type RecipeSource interface {
	FetchRecipes(ctx context.Context) ([]domain.Recipe, error)
}

// SnapshotProvider supplies a fresh market snapshot per run.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*marketDomain.Snapshot, error)
}
