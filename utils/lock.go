// File: utils/lock.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisLocker provides advisory locks keyed by arbitrary strings, backed by
// SET NX with a TTL. It serializes remap batches per recurrence so the
// optimistic conflict check cannot race a concurrent batch between its
// point-in-time read and its commit.
type RedisLocker struct {
	Client  *redis.Client
	TTL     time.Duration // lock expiry; must exceed the longest batch
	Timeout time.Duration // how long to wait for a held lock
}

// NewRedisLocker returns a locker with defaults suited to request-scoped work.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		Client:  client,
		TTL:     30 * time.Second,
		Timeout: 10 * time.Second,
	}
}

// WithLock runs fn while holding the named lock, polling until the lock is
// acquired or the timeout elapses.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	token := uuid.New().String()
	deadline := time.Now().Add(l.Timeout)

	for {
		ok, err := l.Client.SetNX(ctx, "lock:"+key, token, l.TTL).Result()
		if err != nil {
			return fmt.Errorf("acquire lock %q: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("acquire lock %q: timed out", key)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	defer func() {
		// Release only our own token; an expired lock may have been re-acquired.
		current, err := l.Client.Get(ctx, "lock:"+key).Result()
		if err == nil && current == token {
			l.Client.Del(ctx, "lock:"+key)
		}
	}()

	return fn()
}
