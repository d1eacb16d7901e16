package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"poppi/config"
)

var (
	// CacheClient holds short-lived availability data.
	CacheClient *redis.Client
	// SessionClient holds chat session snapshots.
	SessionClient *redis.Client
)

// NewRedisClient connects to the configured Redis server on db and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache initializes the availability cache client.
func InitCache() error {
	client, err := NewRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return err
	}
	CacheClient = client
	return nil
}

// InitSessionCache initializes the chat session client.
func InitSessionCache() error {
	client, err := NewRedisClient(config.AppConfig.RedisSessionDB)
	if err != nil {
		return err
	}
	SessionClient = client
	return nil
}

// CloseCaches closes every initialized client.
func CloseCaches() {
	for _, c := range []*redis.Client{CacheClient, SessionClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
