package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/health"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
)

const tracerName = "github.com/fd1az/eco-market-bot/business/market"

// Service fetches listings and builds snapshots. A run either gets a complete
// listing from one source or fails; partial data is never indexed.
type Service struct {
	primary  StoreSource
	fallback StoreSource
	writer   SnapshotWriter
	builder  *Builder
	tracker  *health.SourceTracker
	metrics  *metrics.MarketMetrics
	log      logger.LoggerInterface
	tracer   trace.Tracer
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithFallback sets the source used when the primary fetch fails.
func WithFallback(src StoreSource) ServiceOption {
	return func(s *Service) { s.fallback = src }
}

// WithWriter sets where SaveStores persists fresh listings.
func WithWriter(w SnapshotWriter) ServiceOption {
	return func(s *Service) { s.writer = w }
}

// WithSourceTracker records each fetch outcome for health checks.
func WithSourceTracker(t *health.SourceTracker) ServiceOption {
	return func(s *Service) { s.tracker = t }
}

// WithMetrics counts built snapshots.
func WithMetrics(m *metrics.MarketMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a market service.
func NewService(primary StoreSource, builder *Builder, log logger.LoggerInterface, opts ...ServiceOption) *Service {
	s := &Service{
		primary: primary,
		builder: builder,
		log:     log,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot fetches the current listings and indexes them.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "market.snapshot")
	defer span.End()

	raw, source, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	snap := s.builder.Build(ctx, raw, source)
	span.SetAttributes(
		attribute.String("snapshot.id", snap.ID.String()),
		attribute.String("snapshot.source", string(snap.Source)),
		attribute.Int("snapshot.stores", snap.StoreCount()),
		attribute.Int("snapshot.items", snap.ItemCount()),
	)
	s.metrics.SnapshotBuilt(ctx, string(source))

	s.log.Info(ctx, "market snapshot ready",
		"snapshot_id", snap.ID.String(),
		"source", source,
		"stores", snap.StoreCount(),
		"items", snap.ItemCount())

	return snap, nil
}

func (s *Service) fetch(ctx context.Context) ([]domain.RawStore, domain.Source, error) {
	raw, err := s.primary.FetchStores(ctx)
	if err == nil {
		s.record(health.SourceOK, nil)
		return raw, domain.SourceAPI, nil
	}

	if s.fallback == nil {
		s.record(health.SourceFailed, err)
		return nil, "", apperror.Wrap(err, apperror.CodeMarketDataUnavailable, "no fallback configured")
	}

	s.log.Warn(ctx, "store fetch failed, using local snapshot", "error", err)

	raw, fbErr := s.fallback.FetchStores(ctx)
	if fbErr != nil {
		s.record(health.SourceFailed, fbErr)
		s.log.Error(ctx, "local snapshot unavailable", "error", fbErr, "fetch_error", err)
		return nil, "", fbErr
	}

	s.record(health.SourceFallback, err)
	return raw, domain.SourceFallback, nil
}

// SaveStores fetches from the primary source only and writes the listing for later fallback use.
func (s *Service) SaveStores(ctx context.Context) (int, error) {
	if s.writer == nil {
		return 0, apperror.New(apperror.CodeConfigurationError, apperror.WithContext("no snapshot writer configured"))
	}

	raw, err := s.primary.FetchStores(ctx)
	if err != nil {
		s.record(health.SourceFailed, err)
		return 0, err
	}
	s.record(health.SourceOK, nil)

	if err := s.writer.SaveStores(ctx, raw); err != nil {
		return 0, err
	}
	return len(raw), nil
}

// Policy returns the offer policy snapshots are built with.
func (s *Service) Policy() domain.Policy {
	return s.builder.Policy()
}

func (s *Service) record(state health.SourceState, err error) {
	if s.tracker != nil {
		s.tracker.Record(state, err)
	}
}
