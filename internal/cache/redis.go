package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/pkg/logger"
	"github.com/MRaysa/medai-client/pkg/retry"
)

// Redis backs the cache with a shared Redis instance, for deployments where
// several portal clients share one state store.
type Redis struct {
	client *redis.Client
}

func NewRedis(host string, port int, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	cfg := retry.DefaultConfig()
	cfg.Logger = logger.GetLogger()
	err := retry.Do(ctx, cfg, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Redis{client: client}, nil
}

func (r *Redis) Load(ctx context.Context, scope Scope, key string, out interface{}) (bool, error) {
	raw, err := r.client.Get(ctx, scope.keyFor(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load cache entry: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("Discarding malformed cache entry",
			zap.String("namespace", scope.namespace()),
			zap.String("key", key),
		)
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true, nil
}

func (r *Redis) Save(ctx context.Context, scope Scope, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := r.client.Set(ctx, scope.keyFor(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, scope Scope, key string) error {
	if err := r.client.Del(ctx, scope.keyFor(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear cache entry: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
