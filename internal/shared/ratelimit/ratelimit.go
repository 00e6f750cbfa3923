// Package ratelimit provides per-client request limiting for the web router.
// LocalLimiter keeps a token bucket per key in memory; RedisLimiter shares a
// fixed window counter across instances through the cache.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"locallibrary/pkg/cache"
	"locallibrary/pkg/logger"
)

// Limiter decides whether a request for key may proceed.
// Decision gồm RetryAfter để middleware set header khi bị chặn.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// ========== LOCAL (in-memory token bucket) ==========

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter cho phép `requests` request mỗi `window` cho mỗi key,
// burst tối đa bằng `requests`.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewLocalLimiter(requests int, window time.Duration) *LocalLimiter {
	l := &LocalLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idle:    2 * window,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go l.cleanup(window)

	return l
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	r := e.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}, nil
	}
	// Không dùng token => trả lại
	r.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}, nil
}

// Stop dừng goroutine cleanup
func (l *LocalLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// cleanup xóa các key không hoạt động quá `idle`
func (l *LocalLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *LocalLimiter) evictIdle() {
	cutoff := l.now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *LocalLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ========== REDIS (fixed window, shared across instances) ==========

const keyPrefix = "ratelimit:"

type RedisLimiter struct {
	cache    cache.Cache
	requests int64
	window   time.Duration
}

func NewRedisLimiter(c cache.Cache, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		cache:    c,
		requests: int64(requests),
		window:   window,
	}
}

// Allow fails open: lỗi Redis không chặn request, error được trả về để log
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	k := keyPrefix + key

	count, err := l.cache.Increment(ctx, k)
	if err != nil {
		return Decision{Allowed: true}, err
	}

	// Request đầu tiên của window => set TTL
	if count == 1 {
		if err := l.cache.Expire(ctx, k, l.window); err != nil {
			return Decision{Allowed: true}, err
		}
	}

	if count <= l.requests {
		return Decision{Allowed: true}, nil
	}

	ttl, err := l.cache.TTL(ctx, k)
	if err != nil {
		return Decision{Allowed: false, RetryAfter: l.window}, nil
	}
	// Key không có TTL (Expire lần đầu bị lỗi) => set lại, nếu không client bị chặn vĩnh viễn
	if ttl < 0 {
		logger.Debug("rate limit key " + k + " has no TTL, re-applying expiry")
		if err := l.cache.Expire(ctx, k, l.window); err != nil {
			return Decision{Allowed: true}, err
		}
		ttl = l.window
	}
	if ttl == 0 {
		ttl = l.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}
