package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricSnapshots     = "market_snapshots_total"
	metricOpportunities = "opportunities_found_total"
	metricChatMessages  = "chat_messages_sent_total"
)

// MarketMetrics holds the domain counters.
type MarketMetrics struct {
	snapshots     metric.Int64Counter
	opportunities metric.Int64Counter
	chatMessages  metric.Int64Counter
}

// NewMarketMetrics registers the domain counters on mp, or on the global provider when mp is nil.
func NewMarketMetrics(mp metric.MeterProvider) (*MarketMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter("eco_market")

	snapshots, err := meter.Int64Counter(metricSnapshots,
		metric.WithDescription("Market snapshots built, by data source"))
	if err != nil {
		return nil, err
	}

	opportunities, err := meter.Int64Counter(metricOpportunities,
		metric.WithDescription("Opportunities reported, by kind"))
	if err != nil {
		return nil, err
	}

	chatMessages, err := meter.Int64Counter(metricChatMessages,
		metric.WithDescription("Chat message chunks delivered, by sink"))
	if err != nil {
		return nil, err
	}

	return &MarketMetrics{
		snapshots:     snapshots,
		opportunities: opportunities,
		chatMessages:  chatMessages,
	}, nil
}

// SnapshotBuilt counts one snapshot from source (api, fallback).
func (m *MarketMetrics) SnapshotBuilt(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.snapshots.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// OpportunitiesFound adds n opportunities of kind.
func (m *MarketMetrics) OpportunitiesFound(ctx context.Context, kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.opportunities.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// ChatMessageSent counts one delivered chunk on sink.
func (m *MarketMetrics) ChatMessageSent(ctx context.Context, sink string) {
	if m == nil {
		return
	}
	m.chatMessages.Add(ctx, 1, metric.WithAttributes(attribute.String("sink", sink)))
}
