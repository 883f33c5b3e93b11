package httpclient

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Request represents an HTTP request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response represents an HTTP response. Non-2xx responses are returned as
// values; deciding what a status means is left to the caller.
type Response struct {
	StatusCode int
	Reason     string
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout time.Duration
	// RetryMax is the number of extra attempts made when the connection
	// cannot be established. Delivered requests are never sent again.
	RetryMax int
	// RateLimit in requests per second; 0 disables the limiter
	RateLimit float64
	Burst     int
}

// DefaultClientConfig mirrors the transport defaults of the gateway client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:  30 * time.Second,
		RetryMax: 3,
		Burst:    1,
	}
}

// RetryingClient implements the Client interface on top of go-retryablehttp
type RetryingClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewRetryingClient creates a pooled, traced client that retries only
// failed connection attempts
func NewRetryingClient(cfg ClientConfig, log *logger.Logger) *RetryingClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.CheckRetry = ConnectionRetryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = log.GetLeveledLogger()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.HTTPClient.Transport = otelhttp.NewTransport(rc.HTTPClient.Transport)

	c := &RetryingClient{
		client: rc,
		logger: log,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// ConnectionRetryPolicy retries only when the connection could not be
// established, so the request never left the client. Anything that fails
// after the request was written, such as a timeout or a dropped connection,
// is final: the gateway may already have acted on it.
func ConnectionRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil || !IsDialError(err) {
		return false, nil
	}
	return true, nil
}

// IsDialError reports a failure to connect to the server
func IsDialError(err error) bool {
	var opErr *net.OpError
	return ierr.As(err, &opErr) && opErr.Op == "dial"
}

// Send makes an HTTP request and returns the response
func (c *RetryingClient) Send(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Request was cancelled while waiting for the rate limiter").
				Mark(ierr.ErrHTTPClient)
		}
	}

	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request method and url").
			Mark(ierr.ErrHTTPClient)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Errorw("http request failed",
			"method", req.Method,
			"url", req.URL,
			"error", err)
		return nil, ierr.WithError(err).
			WithHint("Unable to reach the payment gateway").
			WithReportableDetails(map[string]any{
				"method": req.Method,
				"url":    req.URL,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read the gateway response").
			Mark(ierr.ErrHTTPClient)
	}

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Reason:     ReasonPhrase(resp),
		Body:       respBody,
		Headers:    headers,
	}, nil
}

// ReasonPhrase extracts the reason phrase from the status line,
// falling back to the standard text for the code
func ReasonPhrase(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && strings.TrimSpace(reason) != "" {
		return strings.TrimSpace(reason)
	}
	return http.StatusText(resp.StatusCode)
}
