package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client for REDIS_ADDR, or nil when Redis is not configured.
func NewRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
}

// PingRedis reports whether the client is usable; a nil client is not.
func PingRedis(ctx context.Context, client *redis.Client) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}
