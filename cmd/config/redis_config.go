package config

import (
	"Pantry-Tracker/internal/utils"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_ADDR is unset; the cache then always misses.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		utils.Logger().Warn("REDIS_ADDR not set, recipe cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
