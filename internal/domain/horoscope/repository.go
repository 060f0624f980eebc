package horoscope

import (
	"context"
	"time"
)

// Repository persists generated bundles.
type Repository interface {
	Find(ctx context.Context, key Key) (Content, bool, error)
	Save(ctx context.Context, content Content) error
}

// Cache keeps recently served bundles close to the API.
type Cache interface {
	Get(ctx context.Context, key Key) (Content, bool, error)
	Save(ctx context.Context, content Content, ttl time.Duration) error
	// Clear drops every cached bundle and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// JobQueue enqueues background work.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}
