package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// MonitorStateRepository keeps the SLA monitor's run lock and statistics in Redis
// so that several API replicas share one schedule.
type MonitorStateRepository interface {
	// AcquireLock returns a release func when the lock was taken, nil when another run holds it.
	AcquireLock(ctx context.Context, ttl time.Duration) (func(context.Context) error, error)
	Locked(ctx context.Context) (bool, error)
	RecordRun(ctx context.Context, run domain.MonitorRun) error
	Stats(ctx context.Context) (domain.MonitorStats, error)
	Reset(ctx context.Context) error
}

const (
	monitorLockKey  = "sla-monitor:lock"
	monitorStatsKey = "sla-monitor:stats"
)

var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`)

type monitorStateRepository struct {
	client *redis.Client
	prefix string
}

// NewMonitorStateRepository builds the Redis-backed store. prefix namespaces the keys.
func NewMonitorStateRepository(client *redis.Client, prefix string) MonitorStateRepository {
	return &monitorStateRepository{client: client, prefix: prefix}
}

func (r *monitorStateRepository) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + ":" + name
}

func (r *monitorStateRepository) AcquireLock(ctx context.Context, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.key(monitorLockKey), token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return func(ctx context.Context) error {
		return releaseLockScript.Run(ctx, r.client, []string{r.key(monitorLockKey)}, token).Err()
	}, nil
}

func (r *monitorStateRepository) Locked(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(monitorLockKey)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *monitorStateRepository) RecordRun(ctx context.Context, run domain.MonitorRun) error {
	key := r.key(monitorStatsKey)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if run.Error != "" {
			pipe.HIncrBy(ctx, key, "failed", 1)
			pipe.HSet(ctx, key, "last_error", run.Error)
		} else {
			pipe.HIncrBy(ctx, key, "completed", 1)
			pipe.HDel(ctx, key, "last_error")
		}
		pipe.HSet(ctx, key,
			"last_run", run.StartedAt.UTC().Format(time.RFC3339Nano),
			"last_warnings", run.Warnings,
			"last_breaches", run.Breaches,
		)
		return nil
	})
	return err
}

func (r *monitorStateRepository) Stats(ctx context.Context) (domain.MonitorStats, error) {
	var stats domain.MonitorStats
	values, err := r.client.HGetAll(ctx, r.key(monitorStatsKey)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return stats, err
	}

	stats.Completed = parseInt(values["completed"])
	stats.Failed = parseInt(values["failed"])
	stats.LastWarnings = parseInt(values["last_warnings"])
	stats.LastBreaches = parseInt(values["last_breaches"])
	stats.LastError = values["last_error"]
	if raw := values["last_run"]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			stats.LastRunAt = &ts
		}
	}

	stats.Active, err = r.Locked(ctx)
	return stats, err
}

func (r *monitorStateRepository) Reset(ctx context.Context) error {
	return r.client.Del(ctx, r.key(monitorStatsKey)).Err()
}

func parseInt(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
