// Package ecoapi fetches the recipe catalog from the EcoPriceCalculator plugin API.
package ecoapi

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/circuitbreaker"
	"github.com/fd1az/eco-market-bot/internal/httpclient"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

const (
	tracerName = "github.com/fd1az/eco-market-bot/business/crafting/infra/ecoapi"

	DefaultRecipesPath = "/api/v1/plugins/EcoPriceCalculator/recipes"

	defaultTimeout = 10 * time.Second
)

// Config holds the recipes client settings.
type Config struct {
	BaseURL      string
	RecipesPath  string
	Timeout      time.Duration
	RateLimitRPM int
}

// Client implements app.RecipeSource over HTTP.
type Client struct {
	client  httpclient.Client
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker[[]domain.Recipe]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a recipes client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithContext("recipes base URL is empty"))
	}
	if cfg.RecipesPath == "" {
		cfg.RecipesPath = DefaultRecipesPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("eco-recipes"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(cfg.Timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
		httpclient.WithRateLimiter(ratelimit.New(cfg.RateLimitRPM)),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("eco-recipes")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		client:  client,
		cfg:     cfg,
		breaker: circuitbreaker.New[[]domain.Recipe](breakerCfg),
		logger:  log,
		tracer:  tracer,
	}, nil
}

// FetchRecipes retrieves the full catalog.
func (c *Client) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	ctx, span := c.tracer.Start(ctx, "ecoapi.fetch_recipes",
		trace.WithAttributes(attribute.String("path", c.cfg.RecipesPath)),
	)
	defer span.End()

	recipes, err := c.breaker.Execute(func() ([]domain.Recipe, error) {
		var payload domain.RecipesPayload
		_, err := c.client.NewRequest(
			httpclient.WithLabels(httpclient.NewLabel("endpoint", "recipes")),
			httpclient.WithResponseErrorHandler(statusErrorHandler),
		).
			SetResult(&payload).
			Get(ctx, c.cfg.RecipesPath)
		if err != nil {
			return nil, err
		}
		if payload.Recipes == nil {
			return nil, apperror.New(apperror.CodeInvalidPayload, apperror.WithContext("response has no Recipes field"))
		}
		return payload.Recipes, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Wrap(err, apperror.CodeRecipeFetchFailed, c.cfg.BaseURL+c.cfg.RecipesPath)
	}

	span.SetAttributes(attribute.Int("recipes", len(recipes)))
	c.logger.Debug(ctx, "fetched recipes via HTTP", "recipes", len(recipes))

	return recipes, nil
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
