package runtime

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newLimiter(t *testing.T, clock *fakeClock, configs map[Category]BucketConfig) *RateLimiter {
	t.Helper()
	limiter, err := NewRateLimiter(logs.GetLoggerFromLevel(slog.LevelDebug), configs, WithLimiterClock(clock.Now))
	require.NoError(t, err)
	return limiter
}

func TestRateLimiter_Bucket_Size_Then_Reject(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	const bucketSize = 5
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: bucketSize, Window: time.Second},
	})

	// When a user sends exactly bucketSize messages in the window
	for i := 0; i < bucketSize; i++ {
		req.Equal(VerdictAllow, limiter.Allow("alice", CategoryMessage).Verdict, "request %d", i+1)
	}

	// Then the next one is rejected
	decision := limiter.Allow("alice", CategoryMessage)
	req.Equal(Decision{Verdict: VerdictFail, Reason: ReasonRateLimited}, decision)

	// And another user is not affected
	req.True(limiter.Allow("bob", CategoryMessage).Allowed())

	// When the window resets
	clock.Advance(time.Second)

	// Then the user is admitted again
	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
}

func TestRateLimiter_Scopes_Are_Independent(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 10, Window: time.Second},
		CategoryTyping:  {Capacity: 2, Window: time.Second},
	})

	// Given the typing bucket is exhausted
	req.True(limiter.Allow("alice", CategoryTyping).Allowed())
	req.True(limiter.Allow("alice", CategoryTyping).Allowed())
	req.False(limiter.Allow("alice", CategoryTyping).Allowed())

	// Then messages still go through
	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
}

func TestRateLimiter_Cooldown_Outlives_Window(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 1, Window: time.Second, Cooldown: 5 * time.Second},
	})

	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
	req.False(limiter.Allow("alice", CategoryMessage).Allowed())

	// When the window is over but the cooldown is not
	clock.Advance(2 * time.Second)
	req.False(limiter.Allow("alice", CategoryMessage).Allowed())

	// When the cooldown is over
	clock.Advance(4 * time.Second)
	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
}

func TestRateLimiter_Drop_Unknown_Scope_And_Anonymous(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 1, Window: time.Second},
	})

	req.Equal(Decision{Verdict: VerdictDrop, Reason: ReasonUnknownScope}, limiter.Allow("alice", CategoryTyping))
	req.Equal(Decision{Verdict: VerdictDrop, Reason: ReasonAnonymous}, limiter.Allow("", CategoryMessage))
	req.Zero(limiter.Len())
}

func TestRateLimiter_Cleanup_And_Sweep(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 2, Window: time.Second},
		CategoryTyping:  {Capacity: 2, Window: time.Second},
	})
	limiter.Allow("alice", CategoryMessage)
	limiter.Allow("alice", CategoryTyping)
	limiter.Allow("bob", CategoryMessage)
	req.Equal(3, limiter.Len())

	// When alice disconnects with tokens spent in the running window
	limiter.Cleanup("alice")
	// Then her buckets stay
	req.Equal(3, limiter.Len())

	// When sweeping inside the window, nothing moves
	req.Zero(limiter.Sweep(clock.now))

	// When alice disconnects after the window
	clock.Advance(time.Second)
	limiter.Cleanup("alice")
	req.Equal(1, limiter.Len())

	// When sweeping after the window
	req.Equal(1, limiter.Sweep(clock.now))
	req.Zero(limiter.Len())
}

func TestRateLimiter_Reconnect_Does_Not_Reset_Cooldown(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 1, Window: time.Second, Cooldown: 10 * time.Second},
	})

	// Given alice ran her bucket dry and entered cooldown
	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
	req.False(limiter.Allow("alice", CategoryMessage).Allowed())

	// When she disconnects after the window and reconnects
	clock.Advance(2 * time.Second)
	limiter.Cleanup("alice")

	// Then she is still rejected until the cooldown ends
	req.False(limiter.Allow("alice", CategoryMessage).Allowed())
	req.Zero(limiter.Sweep(clock.now))
	clock.Advance(8 * time.Second)
	req.True(limiter.Allow("alice", CategoryMessage).Allowed())
}

func TestRateLimiter_Cleanup_Drops_Unused_Buckets(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(t, clock, map[Category]BucketConfig{
		CategoryMessage: {Capacity: 2, Window: time.Second},
	})
	// A window that started long ago no longer restricts anyone
	limiter.Allow("alice", CategoryMessage)
	clock.Advance(time.Minute)

	limiter.Cleanup("alice")

	req.Zero(limiter.Len())
}

func TestNewRateLimiter_Rejects_Invalid_Bucket(t *testing.T) {
	req := require.New(t)

	_, err := NewRateLimiter(slog.Default(), map[Category]BucketConfig{CategoryMessage: {Capacity: 0, Window: time.Second}})

	req.Error(err)
}
