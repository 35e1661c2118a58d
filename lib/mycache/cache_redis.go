package mycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(c context.Context, redisURL string) (*redisCache, func(), error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %s", err)
	}
	client := redis.NewClient(options)

	return &redisCache{
			client: client,
		}, func() {
			client.Close()
		}, nil
}

func (r *redisCache) Get(c context.Context, tenantID string, key string, into any) (bool, error) {
	data, err := r.client.Get(c, Key(tenantID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("error reading cache key %s: %w", key, err)
	}

	err = json.Unmarshal(data, into)
	if err != nil {
		return false, fmt.Errorf("error decoding cached value %s: %s", key, err)
	}
	return true, nil
}

func (r *redisCache) Set(c context.Context, tenantID string, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value %s: %s", key, err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	err = r.client.Set(c, Key(tenantID, key), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("error writing cache key %s: %w", key, err)
	}
	return nil
}

func (r *redisCache) Delete(c context.Context, tenantID string, key string) error {
	return r.client.Del(c, Key(tenantID, key)).Err()
}

func (r *redisCache) InvalidatePrefix(c context.Context, tenantID string, prefix string) error {
	iter := r.client.Scan(c, 0, Key(tenantID, prefix)+"*", scanBatch).Iterator()
	keys := []string{}
	for iter.Next(c) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(c, keys...).Err()
}

func (r *redisCache) Ping(c context.Context) error {
	return r.client.Ping(c).Err()
}
