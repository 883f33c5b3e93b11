package auth

import (
	"github.com/flexprice/iamport-go/internal/cache"
	"github.com/flexprice/iamport-go/internal/config"
	"github.com/flexprice/iamport-go/internal/gateway"
	"github.com/flexprice/iamport-go/internal/logger"
)

// Provider supplies access tokens for authenticated gateway calls
type Provider interface {
	gateway.TokenSource
}

// NewProvider picks the token strategy from configuration. Without token
// caching every call performs its own exchange.
func NewProvider(cfg *config.Configuration, exec *gateway.Executor, log *logger.Logger) Provider {
	exchange := NewExchangeProvider(exec, Credentials{
		Key:    cfg.Iamport.APIKey,
		Secret: cfg.Iamport.APISecret,
	}, log)

	if !cfg.TokenCache.Enabled {
		return exchange
	}
	return NewCachedProvider(exchange, cache.NewInMemoryCache(), cfg.TokenCache.Margin, log)
}
