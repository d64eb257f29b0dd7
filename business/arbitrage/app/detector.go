package app

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

// Detector tracks good deals between runs and reports which appeared and
// which disappeared. The only state it keeps is the previous deal set.
type Detector struct {
	snapshots SnapshotProvider
	engine    *Engine
	reporter  DealReporter
	threshold decimal.Decimal
	log       logger.LoggerInterface

	mu      sync.Mutex
	started bool
	tracked []domain.Opportunity
}

// NewDetector creates a deal monitor reporting best pairs with total profit >= threshold.
func NewDetector(
	snapshots SnapshotProvider,
	engine *Engine,
	reporter DealReporter,
	threshold decimal.Decimal,
	log logger.LoggerInterface,
) *Detector {
	return &Detector{
		snapshots: snapshots,
		engine:    engine,
		reporter:  reporter,
		threshold: threshold,
		log:       log,
	}
}

// Threshold returns the good-deal threshold.
func (d *Detector) Threshold() decimal.Decimal {
	return d.threshold
}

// Check runs one monitoring cycle. A failed fetch leaves the tracked set untouched
// so the next successful run is compared with the last good one.
func (d *Detector) Check(ctx context.Context) error {
	snap, err := d.snapshots.Snapshot(ctx)
	if err != nil {
		d.log.Error(ctx, "deal check failed", "error", err)
		return err
	}

	changes := d.Observe(d.engine.FindBest(ctx, snap, d.threshold))
	d.log.Info(ctx, "deal check done",
		"snapshot_id", snap.ID.String(),
		"current", len(changes.Current),
		"new", len(changes.Appeared),
		"gone", len(changes.Disappeared),
		"initial", changes.Initial)

	if d.reporter == nil {
		return nil
	}
	return d.reporter.ReportDeals(ctx, changes)
}

// Observe replaces the tracked set with current and returns the set difference.
func (d *Detector) Observe(current []domain.Opportunity) domain.DealChanges {
	d.mu.Lock()
	defer d.mu.Unlock()

	changes := domain.DealChanges{Current: current}

	if !d.started {
		d.started = true
		changes.Initial = true
		changes.Appeared = current
		d.tracked = current
		return changes
	}

	now := make(map[domain.DealKey]struct{}, len(current))
	for _, o := range current {
		now[o.Key()] = struct{}{}
	}
	before := make(map[domain.DealKey]struct{}, len(d.tracked))
	for _, o := range d.tracked {
		before[o.Key()] = struct{}{}
	}

	for _, o := range current {
		if _, ok := before[o.Key()]; !ok {
			changes.Appeared = append(changes.Appeared, o)
		}
	}
	for _, o := range d.tracked {
		if _, ok := now[o.Key()]; !ok {
			changes.Disappeared = append(changes.Disappeared, o)
		}
	}

	d.tracked = current
	return changes
}

// Reset forgets the tracked deals; the next check is treated as the first.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	d.tracked = nil
}
