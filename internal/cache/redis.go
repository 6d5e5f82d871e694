package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/Pramod3245/Doc-agents/pkg/config"
	"github.com/redis/go-redis/v9"

	"go.uber.org/zap"
)

// Redis is a shared cache for multi-instance deployments. Expiry is
// delegated to the server via per-key TTLs.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedis(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Connected to Redis cache", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return &Redis{client: client, logger: logger}, nil
}

func (r *Redis) Get(ctx context.Context, key Key) (string, bool, error) {
	val, err := r.client.Get(ctx, key.String()).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key Key, summary string, ttl time.Duration) error {
	return r.client.Set(ctx, key.String(), summary, ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
