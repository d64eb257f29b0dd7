// Package httpclient provides an instrumented HTTP client for JSON read APIs,
// with OTEL tracing, a request counter per provider and optional pacing.
package httpclient

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

// TraceOption selects what is recorded on the request span.
type TraceOption string

const (
	TraceRequest  TraceOption = "request"
	TraceResponse TraceOption = "response"
)

type ClientOptions struct {
	providerName   string
	requestTimeout time.Duration
	headers        map[string]string
	baseURL        string
	limiter        *ratelimit.Limiter
	tracer         trace.Tracer
	logRequest     bool
	logResponse    bool
}

type ClientOption func(*ClientOptions)

func NewClientOptions(opts ...ClientOption) *ClientOptions {
	options := &ClientOptions{}
	for _, o := range opts {
		o(options)
	}
	return options
}

// WithProviderName labels metrics and spans, e.g. "eco-stores".
func WithProviderName(name string) ClientOption {
	return func(o *ClientOptions) {
		o.providerName = name
	}
}

func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(o *ClientOptions) {
		o.requestTimeout = timeout
	}
}

func WithHeaders(headers map[string]string) ClientOption {
	return func(o *ClientOptions) {
		o.headers = headers
	}
}

func WithBaseURL(url string) ClientOption {
	return func(o *ClientOptions) {
		o.baseURL = url
	}
}

// WithRateLimiter makes every request wait for a token before it is sent.
func WithRateLimiter(l *ratelimit.Limiter) ClientOption {
	return func(o *ClientOptions) {
		o.limiter = l
	}
}

// WithTraceOptions sets the tracer and what to record on each span.
func WithTraceOptions(tracer trace.Tracer, opts ...TraceOption) ClientOption {
	return func(o *ClientOptions) {
		o.tracer = tracer
		for _, opt := range opts {
			switch opt {
			case TraceRequest:
				o.logRequest = true
			case TraceResponse:
				o.logResponse = true
			}
		}
	}
}

// RequestOptions holds per-request configuration.
type RequestOptions struct {
	responseErrorHandler ResponseErrorHandler
	labels               []*Label
}

type RequestOption func(*RequestOptions)

func NewRequestOptions(opts ...RequestOption) *RequestOptions {
	options := &RequestOptions{}
	for _, o := range opts {
		o(options)
	}
	return options
}

// ResponseErrorHandler maps a status code and body to an error, or nil when the
// response is acceptable.
type ResponseErrorHandler func(statusCode int, body []byte) error

func WithResponseErrorHandler(handler ResponseErrorHandler) RequestOption {
	return func(o *RequestOptions) {
		o.responseErrorHandler = handler
	}
}

// Label is an extra metric attribute, e.g. endpoint=stores.
type Label struct {
	Key   string
	Value string
}

func NewLabel(key, value string) *Label {
	return &Label{Key: key, Value: value}
}

func WithLabels(labels ...*Label) RequestOption {
	return func(o *RequestOptions) {
		o.labels = labels
	}
}
