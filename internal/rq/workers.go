// Where: internal/rq/workers.go
// What: Worker-liveness probing over the redis worker registry.
// Why: Forcing synchronous mode while workers consume the same queues
//      risks duplicate job execution; the runner asks first.
package rq

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/translate/pootle/internal/config"
)

// WorkersKey is the redis set where RQ worker processes register.
const WorkersKey = "rq:workers"

// DefaultProbeTimeout bounds every probe round trip.
const DefaultProbeTimeout = 5 * time.Second

// WorkerProbe reports whether any worker processes are attached to the
// managed queues.
type WorkerProbe interface {
	WorkersRunning(ctx context.Context) (bool, error)
}

// NewClient returns a redis client for the queue's backend with bounded
// timeouts.
func NewClient(queue config.QueueSettings) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         queue.Addr(),
		DB:           queue.DB,
		DialTimeout:  DefaultProbeTimeout,
		ReadTimeout:  DefaultProbeTimeout,
		WriteTimeout: DefaultProbeTimeout,
	})
}

// RedisWorkerProbe counts registered workers on the queue backend.
type RedisWorkerProbe struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisWorkerProbe builds a probe for the queue's redis backend.
func NewRedisWorkerProbe(queue config.QueueSettings) *RedisWorkerProbe {
	return &RedisWorkerProbe{client: NewClient(queue), timeout: DefaultProbeTimeout}
}

// Client exposes the probe's redis client so collaborators with the same
// lifetime can reuse the connection pool. The probe keeps ownership.
func (p *RedisWorkerProbe) Client() *redis.Client { return p.client }

// WorkersRunning reports whether the worker registry is non-empty.
func (p *RedisWorkerProbe) WorkersRunning(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	count, err := p.client.SCard(ctx, WorkersKey).Result()
	if err != nil {
		return false, fmt.Errorf("count rq workers: %w", err)
	}
	return count > 0, nil
}

// Close releases the probe's connection pool.
func (p *RedisWorkerProbe) Close() error {
	return p.client.Close()
}
