//go:build integration

// Package redis_test provides integration tests for Cache backed by a real
// Redis instance. Tests require Docker and are gated behind the
// "integration" build tag.
package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/redis"
)

// startRedis launches a Redis 7 container and returns a Cache connected to it.
func startRedis(t *testing.T) *redis.Cache {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cache := redis.NewCache(config.RedisConfig{
		Addr:       host + ":" + port.Port(),
		DB:         0,
		PoolSize:   5,
		DefaultTTL: time.Minute,
		KeyPrefix:  "sbgnqual:test:",
	})
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCache_SetAndGet(t *testing.T) {
	cache := startRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	key := redis.Key([]byte("<model/>"), "threshold=2")
	require.NoError(t, cache.Set(ctx, key, []byte("<sbml:qual/>")))

	val, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("<sbml:qual/>"), val)
}

func TestCache_GetMiss(t *testing.T) {
	cache := startRedis(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, redis.Key([]byte("nothing"), ""))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_KeyDeterministic(t *testing.T) {
	a := redis.Key([]byte("same bytes"), "p=1")
	b := redis.Key([]byte("same bytes"), "p=1")
	c := redis.Key([]byte("same bytes"), "p=2")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
