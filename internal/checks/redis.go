// Where: internal/checks/redis.go
// What: Redis server inspection for the diagnostics.
package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/translate/pootle/internal/config"
	"github.com/translate/pootle/internal/rq"
)

// RedisStatus is the view of the queue backend consulted by the checks.
type RedisStatus interface {
	Ping(ctx context.Context) error
	ServerVersion(ctx context.Context) (string, error)
	WorkersRunning(ctx context.Context) (bool, error)
}

// ServerStatus inspects a live redis server.
type ServerStatus struct {
	client  *redis.Client
	timeout time.Duration
}

// NewServerStatus connects the diagnostics to the queue's redis backend.
func NewServerStatus(queue config.QueueSettings) *ServerStatus {
	return &ServerStatus{client: rq.NewClient(queue), timeout: rq.DefaultProbeTimeout}
}

// StatusFromClient wraps an existing redis client, typically the worker
// probe's, so the diagnostics reuse its connection pool. The caller keeps
// ownership of the client.
func StatusFromClient(client *redis.Client) *ServerStatus {
	return &ServerStatus{client: client, timeout: rq.DefaultProbeTimeout}
}

// Ping checks basic connectivity.
func (s *ServerStatus) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// ServerVersion reads redis_version from the server info section.
func (s *ServerStatus) ServerVersion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	info, err := s.client.Info(ctx, "server").Result()
	if err != nil {
		return "", fmt.Errorf("read redis server info: %w", err)
	}
	for _, line := range strings.Split(info, "\n") {
		if strings.HasPrefix(line, "redis_version:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "redis_version:")), nil
		}
	}
	return "", errors.New("redis server info has no redis_version")
}

// WorkersRunning reports whether the RQ worker registry is non-empty.
func (s *ServerStatus) WorkersRunning(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.client.SCard(ctx, rq.WorkersKey).Result()
	if err != nil {
		return false, fmt.Errorf("count rq workers: %w", err)
	}
	return count > 0, nil
}

// Close releases the connection pool.
func (s *ServerStatus) Close() error {
	return s.client.Close()
}
