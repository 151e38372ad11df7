package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/config"
)

// Client wraps the Redis connection backing the dashboard summary cache.
// The cache is an accelerator only; callers must stay correct without it.
type Client struct {
	client *redis.Client
	config config.RedisConfig
}

// NewRedisClient connects using the service configuration and verifies the
// connection with a ping before handing the client out.
func NewRedisClient(cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr(cfg), err)
	}

	return &Client{client: client, config: cfg}, nil
}

func addr(cfg config.RedisConfig) string {
	return fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
}

// GetClient returns the underlying Redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
