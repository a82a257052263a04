package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestMonitorLockIsExclusive(t *testing.T) {
	client := newTestRedis(t)
	repo := NewMonitorStateRepository(client, "test-"+uuid.NewString())
	ctx := context.Background()

	release, err := repo.AcquireLock(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, release)

	second, err := repo.AcquireLock(ctx, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, second)

	locked, err := repo.Locked(ctx)
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, release(ctx))
	locked, err = repo.Locked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestMonitorStatsRecordAndReset(t *testing.T) {
	client := newTestRedis(t)
	repo := NewMonitorStateRepository(client, "test-"+uuid.NewString())
	ctx := context.Background()
	started := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.RecordRun(ctx, domain.MonitorRun{StartedAt: started, Warnings: 2, Breaches: 1}))
	require.NoError(t, repo.RecordRun(ctx, domain.MonitorRun{StartedAt: started, Error: "db down"}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, "db down", stats.LastError)
	require.NotNil(t, stats.LastRunAt)
	assert.True(t, started.Equal(*stats.LastRunAt))

	require.NoError(t, repo.Reset(ctx))
	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Completed)
	assert.Nil(t, stats.LastRunAt)
}
