// Package app builds market snapshots from the economy API or a local fallback.
package app

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/market/domain"
)

// StoreSource provides raw store listings.
type StoreSource interface {
	// FetchStores retrieves every store with its offers.
	FetchStores(ctx context.Context) ([]domain.RawStore, error)
}

// SnapshotWriter persists raw listings so a later run can fall back to them.
type SnapshotWriter interface {
	SaveStores(ctx context.Context, stores []domain.RawStore) error
}
