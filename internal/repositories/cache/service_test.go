package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableService() *CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewCacheService(client, time.Minute)
}

func TestCacheService_UnreachableServer(t *testing.T) {
	svc := unreachableService()
	defer svc.Close()
	ctx := context.Background()

	assert.Error(t, svc.HealthCheck(ctx))
	assert.Error(t, svc.SetWithTTL(ctx, "k", map[string]int{"a": 1}, 0))

	var dest map[string]int
	found, err := svc.Get(ctx, "k", &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestCacheService_GetStats(t *testing.T) {
	svc := unreachableService()
	defer svc.Close()

	_ = svc.HealthCheck(context.Background())
	stats := svc.GetStats()
	require.NotNil(t, stats)
	assert.Zero(t, stats.IdleConns)
}

func TestCacheService_MarshalError(t *testing.T) {
	svc := unreachableService()
	defer svc.Close()

	err := svc.SetWithTTL(context.Background(), "k", make(chan int), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal")
}

func TestCacheService_DeleteNoKeys(t *testing.T) {
	svc := unreachableService()
	defer svc.Close()

	assert.NoError(t, svc.Delete(context.Background()))
}

func TestNewRedisClient(t *testing.T) {
	client := NewRedisClient(&RedisConfig{Host: "cache.internal", Port: "6380", DB: 2})
	defer client.Close()

	assert.Equal(t, "cache.internal:6380", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)
}
