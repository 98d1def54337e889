package store

import (
	"context"
	"time"
)

// QuoteCache caches serialized loan quotes keyed by their inputs. A cache
// miss or failure is never fatal; callers recompute.
type QuoteCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
