package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	up := miniredis.RunT(t)
	down := miniredis.RunT(t)
	upClient := redis.NewClient(&redis.Options{Addr: up.Addr()})
	downClient := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
	t.Cleanup(func() {
		_ = upClient.Close()
		_ = downClient.Close()
	})
	down.Close()

	status := CheckHealth(context.Background(), []*redis.Client{upClient, downClient}, true, false)

	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.True(t, status.Calendar)
	assert.False(t, status.Payments)
	assert.False(t, status.Healthy())
	assert.Equal(t, status, GetHealthStatus())
}

func TestStartHealthMonitorChecksImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartHealthMonitor(ctx, time.Hour, nil, false, true)

	status := GetHealthStatus()
	require.False(t, status.CheckedAt.IsZero())
	assert.True(t, status.Healthy())
	assert.True(t, status.Payments)
}
