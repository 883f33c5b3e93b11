// Package iamport is a client for the I'mport payment gateway REST API.
//
// Every call validates its parameters, obtains an access token, sends the
// request and classifies the response. Failures are reported as one of
// MissingParameterError, TransportError, BusinessError or a malformed
// response, which callers can tell apart with the Is helpers in this package.
package iamport

import (
	"context"
	"time"

	"github.com/flexprice/iamport-go/internal/auth"
	"github.com/flexprice/iamport-go/internal/cache"
	"github.com/flexprice/iamport-go/internal/config"
	"github.com/flexprice/iamport-go/internal/gateway"
	"github.com/flexprice/iamport-go/internal/httpclient"
	"github.com/flexprice/iamport-go/internal/logger"
	"github.com/flexprice/iamport-go/internal/validator"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production endpoint used when no base url is given
const DefaultBaseURL = config.DefaultBaseURL

// Client is safe for concurrent use
type Client struct {
	exec   *gateway.Executor
	tokens auth.Provider
	logger *logger.Logger
}

type settings struct {
	Key        string `validate:"required"`
	Secret     string `validate:"required"`
	BaseURL    string `validate:"required,url"`
	HTTP       httpclient.ClientConfig
	TokenCache bool
	Margin     time.Duration
	Logger     *logger.Logger `validate:"-"`
}

// Option customises a Client built with NewClient
type Option func(*settings)

// WithBaseURL points the client at another endpoint, such as a test server
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.BaseURL = baseURL }
}

// WithTimeout bounds each HTTP attempt
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.HTTP.Timeout = d }
}

// WithRetryMax sets how many times a request that failed to reach the
// gateway is attempted again
func WithRetryMax(n int) Option {
	return func(s *settings) { s.HTTP.RetryMax = n }
}

// WithRateLimit caps outgoing requests per second
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *settings) {
		s.HTTP.RateLimit = perSecond
		s.HTTP.Burst = burst
	}
}

// WithTokenCache reuses access tokens until margin before their expiry
// instead of exchanging credentials on every call
func WithTokenCache(margin time.Duration) Option {
	return func(s *settings) {
		s.TokenCache = true
		s.Margin = margin
	}
}

// WithLogger routes client logs to l
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.Logger = logger.FromZap(l) }
}

// NewClient creates a client for the given API key and secret
func NewClient(key, secret string, opts ...Option) (*Client, error) {
	s := &settings{
		Key:     key,
		Secret:  secret,
		BaseURL: DefaultBaseURL,
		HTTP:    httpclient.DefaultClientConfig(),
		Margin:  auth.DefaultMargin,
		Logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validator.ValidateRequest(s); err != nil {
		return nil, err
	}

	exec := gateway.NewExecutor(s.BaseURL, httpclient.NewRetryingClient(s.HTTP, s.Logger), nil, s.Logger)

	exchange := auth.NewExchangeProvider(exec, auth.Credentials{Key: s.Key, Secret: s.Secret}, s.Logger)
	var tokens auth.Provider = exchange
	if s.TokenCache {
		tokens = auth.NewCachedProvider(exchange, cache.NewInMemoryCache(), s.Margin, s.Logger)
	}

	return newClient(exec, tokens, s.Logger), nil
}

// NewClientFromConfig creates a client from loaded configuration
func NewClientFromConfig(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exec := gateway.NewExecutor(cfg.Iamport.BaseURL, httpclient.NewRetryingClient(httpclient.ClientConfig{
		Timeout:   cfg.HTTP.Timeout,
		RetryMax:  cfg.HTTP.RetryMax,
		RateLimit: cfg.HTTP.RateLimit,
		Burst:     cfg.HTTP.Burst,
	}, log), nil, log)

	return newClient(exec, auth.NewProvider(cfg, exec, log), log), nil
}

func newClient(exec *gateway.Executor, tokens auth.Provider, log *logger.Logger) *Client {
	return &Client{
		exec:   exec.WithTokens(tokens),
		tokens: tokens,
		logger: log,
	}
}

// InvalidateToken drops a cached access token so the next call exchanges
// credentials again. It does nothing when token caching is off.
func (c *Client) InvalidateToken(ctx context.Context) {
	if cached, ok := c.tokens.(*auth.CachedProvider); ok {
		cached.Invalidate(ctx)
	}
}
