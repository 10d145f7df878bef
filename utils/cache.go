// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"concierge/config"

	"github.com/go-redis/redis/v8"
)

var (
	// ContextCacheClient holds conversation context between /decide calls.
	ContextCacheClient *redis.Client
)

// NewRedisClient opens a client on the configured server and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitContextCache initializes the Redis client used for conversation context.
func InitContextCache() error {
	client, err := NewRedisClient(config.AppConfig.RedisContextDB)
	if err != nil {
		return err
	}
	ContextCacheClient = client
	return nil
}

// GetContextCacheClient returns the conversation context client, or nil when it was never initialized.
func GetContextCacheClient() *redis.Client {
	return ContextCacheClient
}
