package apm

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/internal/logger"
)

type Provider string

const (
	ZipkinProvider   Provider = "ZIPKIN_PROVIDER"
	OTLPGRPCProvider Provider = "OTLP_GRPC_PROVIDER"
	OTLPHTTPProvider Provider = "OTLP_HTTP_PROVIDER"
	ConsoleProvider  Provider = "CONSOLE_PROVIDER"
	EmptyProvider    Provider = "EMPTY_PROVIDER"
)

// ParseProvider maps a config string (zipkin, otlp-grpc, otlp-http, console) to a Provider.
func ParseProvider(s string) Provider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zipkin":
		return ZipkinProvider
	case "otlp", "otlp-grpc", "grpc":
		return OTLPGRPCProvider
	case "otlp-http", "http":
		return OTLPHTTPProvider
	case "console", "stdout":
		return ConsoleProvider
	default:
		return EmptyProvider
	}
}

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

// Endpoint describes where spans are exported.
type Endpoint struct {
	URL     string
	Headers map[string]string
}

// ParseHeaders parses "k1=v1,k2=v2" into a header map. Malformed pairs are skipped.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			continue
		}
		headers[k] = v
	}
	return headers
}

type TracerOptions struct {
	exporter           sdktrace.SpanExporter
	tracerProviderName string
	serviceName        string
	useEmpty           bool
}

type TracerOption func(*TracerOptions)

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) TracerOption {
	return func(option *TracerOptions) {
		option.serviceName = name
	}
}

// WithProvider selects the span exporter. Failures to build it fall back to the empty provider.
func WithProvider(provider Provider, ep Endpoint, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) {
		ctx := context.Background()

		var (
			exp sdktrace.SpanExporter
			err error
		)
		switch provider {
		case ZipkinProvider:
			exp, err = zipkin.New(ep.URL)
		case OTLPGRPCProvider:
			exp, err = otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpointURL(ep.URL),
				otlptracegrpc.WithHeaders(ep.Headers),
			)
		case OTLPHTTPProvider:
			exp, err = otlptracehttp.New(ctx,
				otlptracehttp.WithEndpointURL(ep.URL),
				otlptracehttp.WithHeaders(ep.Headers),
			)
		case ConsoleProvider:
			exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		default:
			log.Warn(ctx, "TracerProvider not found, using EmptyProvider", "provider", provider)
			option.useEmpty = true
			option.tracerProviderName = string(EmptyProvider)
			return
		}

		if err != nil {
			log.Error(ctx, "Error initializing trace exporter", "provider", provider, "error", err)
			option.useEmpty = true
			option.tracerProviderName = string(EmptyProvider)
			return
		}

		log.Info(ctx, "Trace exporter initialized", "provider", provider, "endpoint", ep.URL)
		option.exporter = exp
		option.tracerProviderName = string(provider)
	}
}

// NewTraceProvider installs a global tracer provider built from options.
func NewTraceProvider(options ...TracerOption) TraceProvider {
	opts := &TracerOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.useEmpty || opts.exporter == nil {
		return NewEmptyTraceProvider()
	}

	rsrc, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(opts.serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(opts.exporter),
		sdktrace.WithResource(rsrc),
	)

	otel.SetTracerProvider(tp)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{
		tp,
	}
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	return o.tp.Shutdown(ctx)
}

// TraceIDFromContext returns the active trace ID, or "" when no span is recording.
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
