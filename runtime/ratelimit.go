package runtime

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Verdict string

const (
	VerdictAllow Verdict = "ALLOW"
	VerdictFail  Verdict = "FAIL"
	VerdictDrop  Verdict = "DROP"
)

const (
	ReasonRateLimited  = "RATE_LIMITED"
	ReasonUnknownScope = "unknown_scope"
	ReasonAnonymous    = "anonymous"
)

// Category is a bucket scope. Every frame is charged to CategoryMessage,
// typing indicators are charged to CategoryTyping as well.
type Category string

const (
	CategoryMessage Category = "message"
	CategoryTyping  Category = "typing"
)

type BucketConfig struct {
	Capacity int
	Window   time.Duration
	// Cooldown keeps a user rejected after the bucket ran dry, even across a window reset.
	Cooldown time.Duration
}

type Decision struct {
	Verdict Verdict
	Reason  string
}

func (d Decision) Allowed() bool { return d.Verdict == VerdictAllow }

type bucketKey struct {
	userID   string
	category Category
}

type bucket struct {
	tokens        int
	windowStart   time.Time
	cooldownUntil time.Time
}

// RateLimiter holds fixed-window token buckets keyed by user and category.
// A user shares the same buckets across all of their connections.
type RateLimiter struct {
	mu      sync.Mutex
	log     *slog.Logger
	configs map[Category]BucketConfig
	buckets map[bucketKey]*bucket
	now     func() time.Time
}

type LimiterOption func(*RateLimiter)

// WithLimiterClock replaces time.Now, for tests.
func WithLimiterClock(now func() time.Time) LimiterOption {
	return func(l *RateLimiter) { l.now = now }
}

func NewRateLimiter(log *slog.Logger, configs map[Category]BucketConfig, opts ...LimiterOption) (*RateLimiter, error) {
	for category, config := range configs {
		if config.Capacity <= 0 || config.Window <= 0 {
			return nil, fmt.Errorf("bucket %q needs a positive capacity and window", category)
		}
	}
	l := &RateLimiter{
		log:     log,
		configs: configs,
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *RateLimiter) Allow(userID string, category Category) Decision {
	if userID == "" {
		return Decision{Verdict: VerdictDrop, Reason: ReasonAnonymous}
	}
	config, ok := l.configs[category]
	if !ok {
		return Decision{Verdict: VerdictDrop, Reason: ReasonUnknownScope}
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	key := bucketKey{userID: userID, category: category}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: config.Capacity, windowStart: now}
		l.buckets[key] = b
	}

	if now.Before(b.cooldownUntil) {
		return Decision{Verdict: VerdictFail, Reason: ReasonRateLimited}
	}
	if !now.Before(b.windowStart.Add(config.Window)) {
		b.tokens = config.Capacity
		b.windowStart = now
	}
	if b.tokens > 0 {
		b.tokens--
		return Decision{Verdict: VerdictAllow}
	}

	if config.Cooldown > 0 {
		b.cooldownUntil = now.Add(config.Cooldown)
	}
	l.log.Debug("Rate limit reached", "user_id", userID, "category", string(category))
	return Decision{Verdict: VerdictFail, Reason: ReasonRateLimited}
}

// Cleanup drops the buckets of userID that no longer restrict them.
// A bucket in cooldown, or with tokens spent in a window still running, is
// left for Sweep so reconnecting does not refill it.
func (l *RateLimiter) Cleanup(userID string) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for category, config := range l.configs {
		key := bucketKey{userID: userID, category: category}
		b, ok := l.buckets[key]
		if !ok {
			continue
		}
		if now.Before(b.cooldownUntil) ||
			(b.tokens < config.Capacity && now.Before(b.windowStart.Add(config.Window))) {
			continue
		}
		delete(l.buckets, key)
	}
}

// Sweep removes buckets whose window and cooldown are both over.
// Such a bucket would be reset by the next Allow anyway.
func (l *RateLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, b := range l.buckets {
		config := l.configs[key.category]
		if now.Before(b.windowStart.Add(config.Window)) || now.Before(b.cooldownUntil) {
			continue
		}
		delete(l.buckets, key)
		removed++
	}
	return removed
}

func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
