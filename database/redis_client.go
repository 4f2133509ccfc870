package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storage-market-indexer/logger"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	cacheTTL    = 300 * time.Second
	ctx         = context.Background()
)

// RedisOptions redis cache options
type RedisOptions struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL int // seconds
}

// InitRedis initialize Redis client; a disabled or unreachable Redis leaves the cache off
func InitRedis(opts RedisOptions) error {
	if !opts.Enabled {
		logger.Infof("Redis cache is disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("Failed to connect to Redis: %v, cache will be disabled", err)
		client.Close()
		return err
	}

	if opts.CacheTTL > 0 {
		cacheTTL = time.Duration(opts.CacheTTL) * time.Second
	}
	RedisClient = client
	logger.Infof("Redis connected successfully: %s:%d (DB: %d, TTL: %s)", opts.Host, opts.Port, opts.DB, cacheTTL)
	return nil
}

// CloseRedis close Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisEnabled check if Redis is connected
func IsRedisEnabled() bool {
	return RedisClient != nil
}

// SetCache set cache with TTL
func SetCache(key string, value interface{}) error {
	if RedisClient == nil {
		return nil // Cache disabled, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := RedisClient.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		logger.Warnf("Failed to set cache for key %s: %v", key, err)
		return err
	}

	return nil
}

// GetCache get cache by key, redis.Nil on miss or when the cache is disabled
func GetCache(key string, dest interface{}) error {
	if RedisClient == nil {
		return redis.Nil
	}

	data, err := RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return nil
}

// DeleteCache delete cache keys
func DeleteCache(keys ...string) error {
	if RedisClient == nil || len(keys) == 0 {
		return nil
	}

	if err := RedisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Warnf("Failed to delete %d cache keys: %v", len(keys), err)
		return err
	}

	return nil
}

// DeleteCachePattern delete cache by pattern
func DeleteCachePattern(pattern string) error {
	if RedisClient == nil {
		return nil
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warnf("Failed to delete cache for key %s: %v", iter.Val(), err)
		}
	}
	return iter.Err()
}
