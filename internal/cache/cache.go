package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache holds short-lived values such as access tokens. Entries expire on
// their own; callers never rely on an entry still being present.
type Cache interface {
	// Get returns the value stored under key and whether it was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores value under key until expiration elapses
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete drops key, for example a token the gateway stopped accepting
	Delete(ctx context.Context, key string)
}

// PrefixAccessToken namespaces cached gateway access tokens
const PrefixAccessToken = "access_token:v1:"

// GenerateKey joins prefix and params with colons
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, param := range params {
		parts = append(parts, fmt.Sprint(param))
	}
	return strings.Join(parts, ":")
}
