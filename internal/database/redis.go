package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"chat-board-api/internal/config"
)

// NewRedis connects to Redis. The client is optional infrastructure:
// callers must tolerate a nil client (caching is skipped, correctness
// is unaffected).
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
