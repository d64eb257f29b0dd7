package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

// MetricProvider is the subset of the SDK meter provider used by the app.
type MetricProvider interface {
	metric.MeterProvider
	Shutdown(ctx context.Context) error
}

// NewMetricProvider builds a meter provider and installs it globally.
// With no exporter configured, readings go to Prometheus.
func NewMetricProvider(ctx context.Context, options ...OptionFn) (MetricProvider, error) {
	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}
	if len(cfg.Exporters) == 0 {
		cfg.Exporters = []ExporterConfig{{Exporter: ExporterPrometheus}}
	}

	readers, err := newReaders(ctx, cfg.Exporters)
	if err != nil {
		return nil, err
	}

	opts := make([]sdkmetric.Option, 0, len(readers)+1)
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	opts = append(opts, sdkmetric.WithResource(resource.NewSchemaless(
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.Version),
	)))

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	return mp, nil
}

func newReaders(ctx context.Context, exporters []ExporterConfig) ([]sdkmetric.Reader, error) {
	readers := make([]sdkmetric.Reader, 0, len(exporters))

	for _, e := range exporters {
		switch e.Exporter {
		case ExporterPrometheus:
			exp, err := prometheus.New()
			if err != nil {
				return nil, fmt.Errorf("prometheus exporter: %w", err)
			}
			readers = append(readers, exp)

		case ExporterOTLP:
			opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpointURL(e.Endpoint)}
			if len(e.Headers) > 0 {
				opts = append(opts, otlpmetricgrpc.WithHeaders(e.Headers))
			}
			if e.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}
			exp, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				return nil, fmt.Errorf("otlp metric exporter: %w", err)
			}
			readers = append(readers, sdkmetric.NewPeriodicReader(exp))

		default:
			return nil, fmt.Errorf("unknown metric exporter %q", e.Exporter)
		}
	}

	return readers, nil
}

// PrometheusServer serves /metrics from the default Prometheus registry.
type PrometheusServer struct {
	srv *http.Server
}

func NewPrometheusServer(port int) *PrometheusServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &PrometheusServer{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens in the background. Listener failures are sent to errCh.
func (s *PrometheusServer) Start(errCh chan<- error) {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serving metrics: %w", err)
		}
	}()
}

func (s *PrometheusServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
