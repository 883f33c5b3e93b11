package gateway

import (
	"context"
	"net/http"
	"strings"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/httpclient"
	"github.com/flexprice/iamport-go/internal/logger"
)

// TokenHeader carries the access token on authenticated calls
const TokenHeader = "X-ImpTokenHeader"

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// TokenSource supplies the access token attached to authenticated calls
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Request describes one gateway call
type Request struct {
	// Operation names the call in logs
	Operation string
	Method    string
	// Path is relative to the executor's base url
	Path   string
	Params map[string]any
	// JSON sends Params as a JSON body instead of form fields
	JSON bool
	// Unauthenticated skips the token header; used by the token exchange
	Unauthenticated bool
}

// Executor builds, sends and classifies gateway requests
type Executor struct {
	baseURL string
	http    httpclient.Client
	tokens  TokenSource
	logger  *logger.Logger
}

// NewExecutor creates an executor. tokens may be nil when only
// unauthenticated requests are made.
func NewExecutor(baseURL string, client httpclient.Client, tokens TokenSource, log *logger.Logger) *Executor {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Executor{
		baseURL: baseURL,
		http:    client,
		tokens:  tokens,
		logger:  log,
	}
}

// WithTokens returns a copy of the executor that authenticates with tokens
func (e *Executor) WithTokens(tokens TokenSource) *Executor {
	cp := *e
	cp.tokens = tokens
	return &cp
}

// Execute sends req and returns the unwrapped response payload
func (e *Executor) Execute(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := e.build(ctx, req)
	if err != nil {
		return nil, err
	}

	log := e.logger.With("operation", req.Operation, "method", req.Method, "path", req.Path)
	log.Debugw("sending gateway request")

	resp, err := e.http.Send(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	payload, err := Classify(resp)
	if err != nil {
		logFailure(log, resp, err)
		return nil, err
	}
	return payload, nil
}

func (e *Executor) build(ctx context.Context, req Request) (*httpclient.Request, error) {
	httpReq := &httpclient.Request{
		Method:  req.Method,
		URL:     e.baseURL + strings.TrimPrefix(req.Path, "/"),
		Headers: map[string]string{"Accept": contentTypeJSON},
	}

	switch {
	case req.JSON:
		body, err := json.Marshal(req.Params)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Request parameters could not be serialised").
				Mark(ierr.ErrValidation)
		}
		httpReq.Body = body
		httpReq.Headers["Content-Type"] = contentTypeJSON
	case len(req.Params) > 0:
		values, err := EncodeForm(req.Params)
		if err != nil {
			return nil, err
		}
		if req.Method == http.MethodGet {
			httpReq.URL += "?" + values.Encode()
		} else {
			httpReq.Body = []byte(values.Encode())
			httpReq.Headers["Content-Type"] = contentTypeForm
		}
	}

	if req.Unauthenticated {
		return httpReq, nil
	}
	if e.tokens == nil {
		return nil, ierr.NewError("no token source configured").
			WithHint("Authenticated requests need a token provider").
			Mark(ierr.ErrSystem)
	}

	token, err := e.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	httpReq.Headers[TokenHeader] = token
	return httpReq, nil
}

func logFailure(log *logger.Logger, resp *httpclient.Response, err error) {
	var be *ierr.BusinessError
	if ierr.As(err, &be) {
		log.Infow("gateway rejected request",
			"code", be.Code,
			"message", be.Message)
		return
	}
	log.Errorw("gateway request failed",
		"status_code", resp.StatusCode,
		"error", err)
}
