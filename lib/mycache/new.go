package mycache

import (
	"context"

	"github.com/MarcGrol/agentcommerce/lib/mytime"
)

// New returns a redis backed cache when redisURL is set, an in-process cache otherwise.
func New(c context.Context, redisURL string, nower mytime.Nower) (Cache, func(), error) {
	if redisURL != "" {
		return NewRedisCache(c, redisURL)
	}
	return NewInMemoryCache(nower), func() {}, nil
}
