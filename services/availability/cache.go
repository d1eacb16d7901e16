package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"poppi/models"
)

const busyCachePrefix = "avail:busy:"

// CachedCalendarClient keeps busy intervals in Redis for a short TTL. Cache
// failures are logged and the upstream client is used instead. A ttl of zero
// or less disables caching.
type CachedCalendarClient struct {
	next   CalendarClient
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedCalendarClient(next CalendarClient, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCalendarClient {
	return &CachedCalendarClient{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedCalendarClient) BusyIntervals(ctx context.Context, day time.Time) ([]models.BusyInterval, error) {
	if c.ttl <= 0 {
		return c.next.BusyIntervals(ctx, day)
	}
	key := busyCachePrefix + FormatDay(day)

	data, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var busy []models.BusyInterval
		if jsonErr := json.Unmarshal([]byte(data), &busy); jsonErr == nil {
			c.logger.Debug("busy intervals cache hit", zap.String("key", key))
			return busy, nil
		}
		c.logger.Warn("discarding malformed busy interval cache entry", zap.String("key", key))
	case err != redis.Nil:
		c.logger.Warn("busy interval cache read failed", zap.String("key", key), zap.Error(err))
	}

	busy, err := c.next.BusyIntervals(ctx, day)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(busy); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.logger.Warn("busy interval cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return busy, nil
}
