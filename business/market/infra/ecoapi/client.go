// Package ecoapi fetches store listings from the EcoPriceCalculator plugin API.
package ecoapi

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/circuitbreaker"
	"github.com/fd1az/eco-market-bot/internal/httpclient"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

const (
	tracerName = "github.com/fd1az/eco-market-bot/business/market/infra/ecoapi"

	DefaultBaseURL    = "http://144.217.255.182:3001"
	DefaultStoresPath = "/api/v1/plugins/EcoPriceCalculator/stores"

	defaultTimeout = 10 * time.Second
)

// Config holds the stores client settings.
type Config struct {
	BaseURL      string
	StoresPath   string
	Timeout      time.Duration
	RateLimitRPM int
}

// Client implements app.StoreSource over HTTP.
type Client struct {
	client  httpclient.Client
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker[[]domain.RawStore]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a stores client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.StoresPath == "" {
		cfg.StoresPath = DefaultStoresPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("eco-stores"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(cfg.Timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
		httpclient.WithRateLimiter(ratelimit.New(cfg.RateLimitRPM)),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("eco-stores")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		client:  client,
		cfg:     cfg,
		breaker: circuitbreaker.New[[]domain.RawStore](breakerCfg),
		logger:  log,
		tracer:  tracer,
	}, nil
}

// FetchStores retrieves all stores. Any transport error, non-2xx status or
// undecodable body fails the whole fetch.
func (c *Client) FetchStores(ctx context.Context) ([]domain.RawStore, error) {
	ctx, span := c.tracer.Start(ctx, "ecoapi.fetch_stores",
		trace.WithAttributes(attribute.String("path", c.cfg.StoresPath)),
	)
	defer span.End()

	stores, err := c.breaker.Execute(func() ([]domain.RawStore, error) {
		return c.get(ctx)
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Wrap(err, apperror.CodeMarketFetchFailed, c.cfg.BaseURL+c.cfg.StoresPath)
	}

	span.SetAttributes(attribute.Int("stores", len(stores)))
	c.logger.Debug(ctx, "fetched stores via HTTP", "stores", len(stores))

	return stores, nil
}

func (c *Client) get(ctx context.Context) ([]domain.RawStore, error) {
	var payload domain.StoresPayload
	_, err := c.client.NewRequest(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", "stores")),
		httpclient.WithResponseErrorHandler(statusErrorHandler),
	).
		SetResult(&payload).
		Get(ctx, c.cfg.StoresPath)
	if err != nil {
		return nil, apperror.External(apperror.CodeMarketFetchFailed, "GET "+c.cfg.StoresPath, err)
	}
	if payload.Stores == nil {
		return nil, apperror.New(apperror.CodeInvalidPayload, apperror.WithContext("response has no Stores field"))
	}
	return payload.Stores, nil
}

// statusErrorHandler rejects anything outside 2xx.
func statusErrorHandler(statusCode int, body []byte) error {
	if statusCode < 200 || statusCode >= 300 {
		const max = 256
		if len(body) > max {
			body = body[:max]
		}
		return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
	}
	return nil
}
