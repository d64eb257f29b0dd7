package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
)

const tracerName = "github.com/fd1az/eco-market-bot/business/crafting"

// Result is a crafting run.
type Result struct {
	Snapshot      *marketDomain.Snapshot
	RecipeCount   int
	Opportunities []domain.Opportunity
}

// ProfessionResult is a theoretical profession run.
type ProfessionResult struct {
	Snapshot    *marketDomain.Snapshot
	RecipeCount int
	MinProfit   string
	Professions []domain.ProfessionSummary
}

// Service runs the crafting engine against a fresh snapshot and the recipe catalog.
type Service struct {
	recipes   RecipeSource
	snapshots SnapshotProvider
	engine    *Engine
	metrics   *metrics.MarketMetrics
	log       logger.LoggerInterface
	tracer    trace.Tracer
}

// NewService creates a crafting service. mm may be nil.
func NewService(recipes RecipeSource, snapshots SnapshotProvider, engine *Engine, mm *metrics.MarketMetrics, log logger.LoggerInterface) *Service {
	return &Service{
		recipes:   recipes,
		snapshots: snapshots,
		engine:    engine,
		metrics:   mm,
		log:       log,
		tracer:    otel.Tracer(tracerName),
	}
}

// Opportunities ranks craftable variants by cascaded total profit.
func (s *Service) Opportunities(ctx context.Context) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "crafting.opportunities")
	defer span.End()

	snap, recipes, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return s.rank(ctx, snap, recipes), nil
}

// OpportunitiesFrom ranks craftable variants on an existing snapshot. Only the
// recipe catalog is fetched.
func (s *Service) OpportunitiesFrom(ctx context.Context, snap *marketDomain.Snapshot) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "crafting.opportunities")
	defer span.End()

	recipes, err := s.recipes.FetchRecipes(ctx)
	if err != nil {
		span.RecordError(err)
		s.log.Error(ctx, "recipe fetch failed", "error", err)
		return nil, err
	}

	return s.rank(ctx, snap, recipes), nil
}

func (s *Service) rank(ctx context.Context, snap *marketDomain.Snapshot, recipes []domain.Recipe) *Result {
	opps := s.engine.FindOpportunities(ctx, recipes, snap)

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("recipes", len(recipes)), attribute.Int("opportunities", len(opps)))
	s.metrics.OpportunitiesFound(ctx, "crafting", len(opps))
	s.log.Info(ctx, "crafting analysis done",
		"snapshot_id", snap.ID.String(),
		"recipes", len(recipes),
		"opportunities", len(opps),
		"cascade", s.engine.Config().Cascade)

	return &Result{Snapshot: snap, RecipeCount: len(recipes), Opportunities: opps}
}

// Professions ranks primary professions by theoretical demand-driven profit.
func (s *Service) Professions(ctx context.Context) (*ProfessionResult, error) {
	ctx, span := s.tracer.Start(ctx, "crafting.professions")
	defer span.End()

	snap, recipes, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	summaries := s.engine.Professions(ctx, recipes, snap)

	span.SetAttributes(attribute.Int("recipes", len(recipes)), attribute.Int("professions", len(summaries)))
	s.metrics.OpportunitiesFound(ctx, "profession", len(summaries))
	s.log.Info(ctx, "profession analysis done",
		"snapshot_id", snap.ID.String(),
		"recipes", len(recipes),
		"professions", len(summaries))

	return &ProfessionResult{
		Snapshot:    snap,
		RecipeCount: len(recipes),
		MinProfit:   s.engine.Config().MinProfessionProfit.String(),
		Professions: summaries,
	}, nil
}

func (s *Service) load(ctx context.Context) (*marketDomain.Snapshot, []domain.Recipe, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	recipes, err := s.recipes.FetchRecipes(ctx)
	if err != nil {
		s.log.Error(ctx, "recipe fetch failed", "error", err)
		return nil, nil, err
	}
	return snap, recipes, nil
}
