package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sportstat/tennis-api/internal/models"
)

const snapshotKey = "tennis:directory:snapshot"

// RedisClient is the slice of go-redis used by the snapshot cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache persists the most recent good snapshot in Redis so a failed
// source load can fall back to it instead of leaving the service with
// no directory at all.
type Cache struct {
	client RedisClient
}

func NewCache(client RedisClient) *Cache {
	return &Cache{client: client}
}

// Store overwrites the cached snapshot. No expiry: a stale directory
// beats an empty one.
func (c *Cache) Store(ctx context.Context, s *Snapshot) error {
	payload, err := json.Marshal(s.players)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load restores the cached snapshot, or redis.Nil if none was stored.
func (c *Cache) Load(ctx context.Context) (*Snapshot, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var players map[string]models.PlayerProfile
	if err := json.Unmarshal(payload, &players); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return fromMap(players), nil
}
