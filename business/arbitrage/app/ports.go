package app

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
)

// SnapshotProvider supplies a fresh market snapshot per run.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*marketDomain.Snapshot, error)
}

// DealReporter receives the deal monitor's changes after every check.
type DealReporter interface {
	ReportDeals(ctx context.Context, changes domain.DealChanges) error
}
