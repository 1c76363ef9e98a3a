package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/roombook/internal/metrics"
)

// StatusCache keeps resolved room statuses in Redis so that dashboard polling
// does not recompute availability on every request. Lookups are best effort: a
// cache failure is treated as a miss and never surfaces to callers. A nil
// cache disables caching entirely.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

const statusKeyPrefix = "roombook:room-status:"

// NewStatusCache wraps a Redis client with the given entry TTL.
func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatusCache{client: client, ttl: ttl}
}

// Get returns the cached status for a room, if present and fresh.
func (c *StatusCache) Get(ctx context.Context, roomID string) (RoomStatus, bool) {
	if c == nil || c.client == nil {
		return RoomStatus{}, false
	}

	payload, err := c.client.Get(ctx, statusKeyPrefix+roomID).Bytes()
	if err != nil {
		metrics.IncStatusCacheLookup("miss")
		return RoomStatus{}, false
	}

	var status RoomStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		metrics.IncStatusCacheLookup("miss")
		return RoomStatus{}, false
	}

	metrics.IncStatusCacheLookup("hit")
	return status, true
}

// Store caches the resolved status for a room.
func (c *StatusCache) Store(ctx context.Context, status RoomStatus) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(status)
	if err != nil {
		return
	}
	c.client.Set(ctx, statusKeyPrefix+status.RoomID, payload, c.ttl)
}

// Invalidate drops the cached status for a room. Booking mutations call this
// so that the next status lookup reflects the change.
func (c *StatusCache) Invalidate(ctx context.Context, roomID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, statusKeyPrefix+roomID)
}
