package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
)

const tracerName = "github.com/fd1az/eco-market-bot/business/arbitrage"

// BestPairs is the result of a best-pair run.
type BestPairs struct {
	Snapshot       *marketDomain.Snapshot
	MinTotalProfit decimal.Decimal
	Opportunities  []domain.Opportunity
}

// Analysis is the result of a deep pairwise run.
type Analysis struct {
	Snapshot   *marketDomain.Snapshot
	Pairs      []domain.Opportunity
	Categories map[domain.Category][]domain.Opportunity
	FreeItems  []domain.FreeItem
}

// Service runs the arbitrage engine against a fresh snapshot.
type Service struct {
	snapshots SnapshotProvider
	engine    *Engine
	metrics   *metrics.MarketMetrics
	log       logger.LoggerInterface
	tracer    trace.Tracer
}

// NewService creates an arbitrage service. mm may be nil.
func NewService(snapshots SnapshotProvider, engine *Engine, mm *metrics.MarketMetrics, log logger.LoggerInterface) *Service {
	return &Service{
		snapshots: snapshots,
		engine:    engine,
		metrics:   mm,
		log:       log,
		tracer:    otel.Tracer(tracerName),
	}
}

// Engine returns the underlying engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// BestPairs fetches a snapshot and runs best-pair mode with the configured threshold.
func (s *Service) BestPairs(ctx context.Context) (*BestPairs, error) {
	ctx, span := s.tracer.Start(ctx, "arbitrage.best_pairs")
	defer span.End()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return s.BestPairsFrom(ctx, snap), nil
}

// BestPairsFrom runs best-pair mode on an existing snapshot.
func (s *Service) BestPairsFrom(ctx context.Context, snap *marketDomain.Snapshot) *BestPairs {
	threshold := s.engine.Config().MinTotalProfit
	opps := s.engine.FindBest(ctx, snap, threshold)

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("opportunities", len(opps)))
	s.metrics.OpportunitiesFound(ctx, "best_pair", len(opps))
	s.log.Info(ctx, "best-pair analysis done",
		"snapshot_id", snap.ID.String(),
		"opportunities", len(opps),
		"min_total_profit", threshold.String())

	return &BestPairs{Snapshot: snap, MinTotalProfit: threshold, Opportunities: opps}
}

// Analyze fetches a snapshot and runs the pairwise, category and free-item analyses.
// categoryLimit bounds each category bucket.
func (s *Service) Analyze(ctx context.Context, categoryLimit int) (*Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "arbitrage.analyze")
	defer span.End()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	pairs := s.engine.FindAllPairwise(ctx, snap)
	free := s.engine.FindFreeItems(ctx, snap)

	span.SetAttributes(
		attribute.Int("pairs", len(pairs)),
		attribute.Int("free_items", len(free)),
	)
	s.metrics.OpportunitiesFound(ctx, "pairwise", len(pairs))
	s.metrics.OpportunitiesFound(ctx, "free_item", len(free))
	s.log.Info(ctx, "pairwise analysis done",
		"snapshot_id", snap.ID.String(),
		"pairs", len(pairs),
		"free_items", len(free))

	return &Analysis{
		Snapshot:   snap,
		Pairs:      pairs,
		Categories: s.engine.Categorize(pairs, categoryLimit),
		FreeItems:  free,
	}, nil
}
