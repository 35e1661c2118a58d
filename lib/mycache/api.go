package mycache

import (
	"context"
	"fmt"
	"time"
)

const (
	KeyPrefix  = "agx"
	DefaultTTL = 300 * time.Second
)

// Cache holds json encoded values in a namespace per tenant.
type Cache interface {
	Get(c context.Context, tenantID string, key string, into any) (bool, error)
	Set(c context.Context, tenantID string, key string, value any, ttl time.Duration) error
	Delete(c context.Context, tenantID string, key string) error
	// InvalidatePrefix removes every key of the tenant starting with prefix.
	InvalidatePrefix(c context.Context, tenantID string, prefix string) error
	Ping(c context.Context) error
}

func Key(tenantID string, key string) string {
	return fmt.Sprintf("%s:%s:%s", KeyPrefix, tenantID, key)
}

// GetOrLoad serves from cache and falls back to load, storing its result.
// Cache failures never fail the call.
func GetOrLoad[T any](c context.Context, cache Cache, tenantID string, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var value T
	found, err := cache.Get(c, tenantID, key, &value)
	if err == nil && found {
		return value, nil
	}

	value, err = load()
	if err != nil {
		return value, err
	}

	_ = cache.Set(c, tenantID, key, value, ttl)

	return value, nil
}
