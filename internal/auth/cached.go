package auth

import (
	"context"
	"time"

	"github.com/flexprice/iamport-go/internal/cache"
	"github.com/flexprice/iamport-go/internal/logger"
	"golang.org/x/sync/singleflight"
)

// DefaultMargin is subtracted from the declared token lifetime so a cached
// token is never sent close to its expiry.
const DefaultMargin = time.Minute

// CachedProvider reuses a token until shortly before its declared expiry.
// Concurrent misses share a single exchange.
type CachedProvider struct {
	exchange Exchanger
	cache    cache.Cache
	margin   time.Duration
	key      string
	group    singleflight.Group
	logger   *logger.Logger
}

func NewCachedProvider(exchange Exchanger, c cache.Cache, margin time.Duration, log *logger.Logger) *CachedProvider {
	if margin < 0 {
		margin = DefaultMargin
	}
	return &CachedProvider{
		exchange: exchange,
		cache:    c,
		margin:   margin,
		key:      cache.GenerateKey(cache.PrefixAccessToken, "default"),
		logger:   log,
	}
}

// Token implements gateway.TokenSource
func (p *CachedProvider) Token(ctx context.Context) (string, error) {
	if token, ok := p.cached(ctx); ok {
		return token, nil
	}

	// The exchange is shared by every waiting caller, so it must not end
	// when the caller that happened to start it gives up.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := p.group.Do(p.key, func() (interface{}, error) {
		if token, ok := p.cached(flightCtx); ok {
			return token, nil
		}

		token, err := p.exchange.Exchange(flightCtx)
		if err != nil {
			return nil, err
		}

		ttl := token.TTL() - p.margin
		if ttl > 0 {
			p.cache.Set(flightCtx, p.key, token.AccessToken, ttl)
		} else {
			p.logger.Warnw("access token lifetime shorter than cache margin, not caching",
				"ttl", token.TTL().String(),
				"margin", p.margin.String())
		}
		return token.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		p.logger.Debugw("shared in-flight token exchange")
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call exchanges again
func (p *CachedProvider) Invalidate(ctx context.Context) {
	p.cache.Delete(ctx, p.key)
}

func (p *CachedProvider) cached(ctx context.Context) (string, bool) {
	v, ok := p.cache.Get(ctx, p.key)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
