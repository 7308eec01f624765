package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Client caches entity-detail lookups. The graph is read-only at serve time,
// so entries only go stale when ingestion re-runs; a short TTL covers that.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GetDetails returns a cached lookup. Any cache failure is a miss.
func (c *Client) GetDetails(ctx context.Context, name, label string) (*kg.EntityDetails, bool) {
	data, err := c.client.Get(ctx, detailsKey(name, label)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("Cache read failed", zap.Error(err))
		return nil, false
	}

	var details kg.EntityDetails
	if err := json.Unmarshal(data, &details); err != nil {
		logger.Warn("Cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, detailsKey(name, label))
		return nil, false
	}
	return &details, true
}

// SetDetails stores a lookup result, best effort.
func (c *Client) SetDetails(ctx context.Context, name, label string, details *kg.EntityDetails) {
	data, err := json.Marshal(details)
	if err != nil {
		logger.Warn("Failed to marshal cache entry", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, detailsKey(name, label), data, c.ttl).Err(); err != nil {
		logger.Warn("Cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached lookup, called after ingestion runs.
func (c *Client) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "details:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate cache keys: %w", err)
	}
	logger.Info("Entity detail cache invalidated")
	return nil
}

func detailsKey(name, label string) string {
	return fmt.Sprintf("details:%s:%s", label, strings.ToLower(name))
}
