package auth

import (
	"context"
	"net/http"
	"time"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/gateway"
	"github.com/flexprice/iamport-go/internal/logger"
)

const tokenPath = "users/getToken"

// Credentials are the API key and secret issued by the gateway
type Credentials struct {
	Key    string `validate:"required"`
	Secret string `validate:"required"`
}

// Token is the payload of a successful token exchange
type Token struct {
	AccessToken string `json:"access_token"`
	// Now and ExpiredAt are unix seconds on the gateway's clock
	Now       int64 `json:"now"`
	ExpiredAt int64 `json:"expired_at"`
}

// TTL is the lifetime the gateway declared for the token, measured on its
// own clock so local clock skew does not matter. Zero when unknown.
func (t *Token) TTL() time.Duration {
	if t.Now <= 0 || t.ExpiredAt <= t.Now {
		return 0
	}
	return time.Duration(t.ExpiredAt-t.Now) * time.Second
}

// Exchanger trades credentials for a token
type Exchanger interface {
	Exchange(ctx context.Context) (*Token, error)
}

// ExchangeProvider performs a fresh exchange on every Token call
type ExchangeProvider struct {
	exec        *gateway.Executor
	credentials Credentials
	logger      *logger.Logger
}

func NewExchangeProvider(exec *gateway.Executor, credentials Credentials, log *logger.Logger) *ExchangeProvider {
	return &ExchangeProvider{
		exec:        exec,
		credentials: credentials,
		logger:      log,
	}
}

// Exchange posts the credentials to the token endpoint
func (p *ExchangeProvider) Exchange(ctx context.Context) (*Token, error) {
	payload, err := p.exec.Execute(ctx, gateway.Request{
		Operation: "get_token",
		Method:    http.MethodPost,
		Path:      tokenPath,
		Params: map[string]any{
			"imp_key":    p.credentials.Key,
			"imp_secret": p.credentials.Secret,
		},
		Unauthenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var token Token
	if err := gateway.Decode(payload, &token); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token response could not be decoded").
			Mark(ierr.ErrMalformedResponse)
	}
	if token.AccessToken == "" {
		return nil, ierr.NewError("token response has no access_token").
			WithHint("Gateway returned an empty access token").
			Mark(ierr.ErrMalformedResponse)
	}

	p.logger.Debugw("obtained access token", "expires_in", token.TTL().String())
	return &token, nil
}

// Token implements gateway.TokenSource
func (p *ExchangeProvider) Token(ctx context.Context) (string, error) {
	token, err := p.Exchange(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
