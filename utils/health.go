package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     []bool    `json:"redis"`
	Calendar  bool      `json:"calendar"`
	Payments  bool      `json:"payments"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every Redis client answered the last ping.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every Redis client and records the result.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, calendarConfigured, paymentsConfigured bool) HealthStatus {
	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		redisHealth = append(redisHealth, err == nil)
	}

	status := HealthStatus{
		Redis:     redisHealth,
		Calendar:  calendarConfigured,
		Payments:  paymentsConfigured,
		CheckedAt: time.Now(),
	}
	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor checks once immediately and then every interval until
// ctx is cancelled.
func StartHealthMonitor(ctx context.Context, interval time.Duration, redisClients []*redis.Client, calendarConfigured, paymentsConfigured bool) {
	CheckHealth(ctx, redisClients, calendarConfigured, paymentsConfigured)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, redisClients, calendarConfigured, paymentsConfigured)
			}
		}
	}()
}
