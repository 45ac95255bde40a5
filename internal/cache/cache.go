package cache

import (
	"context"
	"time"
)

// DashboardPrefix namespaces every dashboard key so a ledger mutation can drop them in one sweep.
const DashboardPrefix = "dashboard:"

// Cache stores JSON-encoded values. Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// NoopCache is used when REDIS_ADDR is empty.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (NoopCache) DeletePrefix(_ context.Context, _ string) error {
	return nil
}
