package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares window state across replicas. The window is an INCR
// counter with a TTL set on the first hit, so the key itself carries the
// window boundary and expires server-side without any sweeping.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps an existing Redis client. Keys are namespaced under the
// given prefix (default "authgate:rl:") so the limiter can share a database
// with other tenants. The client's lifecycle stays with the caller; Close here
// does not close it.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "authgate:rl:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Hit implements [Store].
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	count := incr.Val()

	// A key without a TTL is either brand new or left over from a crashed
	// EXPIRE; arm the window in both cases.
	remaining := ttl.Val()
	if remaining < 0 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		remaining = window
	}

	return int(count), time.Now().Add(remaining), nil
}

// Clear implements [Store].
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close implements [Store]. The Redis client is caller-owned, so this is a
// no-op.
func (s *RedisStore) Close() error {
	return nil
}
