package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/easyclick/support-desk/internal/config"
)

// RedisMedium stores each key as a Redis string value.
type RedisMedium struct {
	client *redis.Client
}

// NewRedisMedium connects to Redis using the provided configuration. An
// unreachable server is logged rather than fatal; operations will surface
// errors as they occur.
func NewRedisMedium(cfg config.RedisConfig, logger *zap.Logger) *RedisMedium {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisMedium{client: client}
}

// Get returns the stored value for key.
func (m *RedisMedium) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := m.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set replaces the value for key. Redis SET is a single atomic replace.
func (m *RedisMedium) Set(ctx context.Context, key, value string) error {
	return m.client.Set(ctx, key, value, 0).Err()
}

// Delete removes key.
func (m *RedisMedium) Delete(ctx context.Context, key string) error {
	return m.client.Del(ctx, key).Err()
}

// Ping verifies Redis connectivity.
func (m *RedisMedium) Ping(ctx context.Context) error {
	if m == nil || m.client == nil {
		return errors.New("redis client not configured")
	}
	return m.client.Ping(ctx).Err()
}

// Close closes the client.
func (m *RedisMedium) Close() {
	if m != nil && m.client != nil {
		_ = m.client.Close()
	}
}
