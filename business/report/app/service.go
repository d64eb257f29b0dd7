// Package app contains report rendering and delivery use cases.
package app

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	arbDomain "github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	"github.com/fd1az/eco-market-bot/business/report/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/metrics"
)

const tracerName = "github.com/fd1az/eco-market-bot/business/report"

// Service renders reports and delivers them, chunked, to every registered sink.
type Service struct {
	formatter *Formatter
	runner    BestPairsRunner
	chunkSize int
	metrics   *metrics.MarketMetrics
	log       logger.LoggerInterface
	tracer    trace.Tracer

	mu    sync.RWMutex
	sinks []Sink
}

// NewService creates a report service. runner may be nil when no market
// report is ever requested; mm may be nil.
func NewService(formatter *Formatter, runner BestPairsRunner, chunkSize int, mm *metrics.MarketMetrics, log logger.LoggerInterface) *Service {
	if chunkSize <= 0 {
		chunkSize = domain.ChunkSize
	}
	return &Service{
		formatter: formatter,
		runner:    runner,
		chunkSize: chunkSize,
		metrics:   mm,
		log:       log,
		tracer:    otel.Tracer(tracerName),
	}
}

// Formatter returns the report formatter.
func (s *Service) Formatter() *Formatter {
	return s.formatter
}

// AddSink registers a delivery target.
func (s *Service) AddSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// SinkNames lists the registered sinks in registration order.
func (s *Service) SinkNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.sinks))
	for i, sink := range s.sinks {
		names[i] = sink.Name()
	}
	return names
}

// Publish sends doc to every sink, chunk by chunk, in order. A failing sink
// stops receiving the remaining chunks but does not prevent delivery to the others.
func (s *Service) Publish(ctx context.Context, doc *domain.Document) error {
	chunks := doc.Chunks(s.chunkSize)

	ctx, span := s.tracer.Start(ctx, "report.publish",
		trace.WithAttributes(
			attribute.String("report", doc.Title),
			attribute.Int("chunks", len(chunks)),
		),
	)
	defer span.End()

	s.mu.RLock()
	sinks := append([]Sink(nil), s.sinks...)
	s.mu.RUnlock()

	if len(sinks) == 0 {
		err := apperror.New(apperror.CodeChatNotConfigured, apperror.WithContext("no report sinks registered"))
		span.RecordError(err)
		return err
	}

	var errs []error
	for _, sink := range sinks {
		if err := s.deliver(ctx, sink, chunks); err != nil {
			span.RecordError(err)
			s.log.Error(ctx, "report delivery failed", "report", doc.Title, "sink", sink.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		s.log.Info(ctx, "report delivered", "report", doc.Title, "sink", sink.Name(), "chunks", len(chunks))
	}
	return errors.Join(errs...)
}

func (s *Service) deliver(ctx context.Context, sink Sink, chunks []string) error {
	for i, chunk := range chunks {
		if err := sink.Send(ctx, chunk); err != nil {
			return apperror.New(apperror.CodeChatDeliveryFailed,
				apperror.WithContext(sink.Name()),
				apperror.WithMessage("failed to deliver report chunk"),
				apperror.WithCause(err))
		}
		s.metrics.ChatMessageSent(ctx, sink.Name())
		s.log.Debug(ctx, "report chunk sent", "sink", sink.Name(), "chunk", i+1, "of", len(chunks))
	}
	return nil
}

// MarketReport runs best-pair mode and renders it, or renders the
// data-unavailable message when the run fails.
func (s *Service) MarketReport(ctx context.Context) *domain.Document {
	if s.runner == nil {
		return s.formatter.Unavailable(apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("market report runner not configured")))
	}
	res, err := s.runner.BestPairs(ctx)
	if err != nil {
		s.log.Warn(ctx, "market report unavailable", "error", err, "code", apperror.GetCode(err))
		return s.formatter.Unavailable(err)
	}
	return s.formatter.BestPairs(res)
}

// Help renders the command list.
func (s *Service) Help(ctx context.Context) *domain.Document {
	return s.formatter.Help()
}

// PublishMarketReport is the scheduled report job.
func (s *Service) PublishMarketReport(ctx context.Context) error {
	return s.Publish(ctx, s.MarketReport(ctx))
}

// ReportDeals publishes a monitor observation.
func (s *Service) ReportDeals(ctx context.Context, changes arbDomain.DealChanges) error {
	return s.Publish(ctx, s.formatter.Deals(changes))
}
