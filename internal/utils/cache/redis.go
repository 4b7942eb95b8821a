// Package cache wraps a redis client with JSON helpers. A nil client turns every call
// into a miss, so callers work unchanged when redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type (
	Cache interface {
		GetObject(ctx context.Context, key string, dest any) (bool, error)
		SetObject(ctx context.Context, key string, obj any, exp time.Duration) error
		Delete(ctx context.Context, keys ...string) error
		DeletePrefix(ctx context.Context, prefix string) error
	}

	redisCache struct {
		rdb *redis.Client
	}
)

func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) GetObject(ctx context.Context, key string, dest any) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) SetObject(ctx context.Context, key string, obj any, exp time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, exp).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}
