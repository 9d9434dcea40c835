package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 3))

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/parse", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/parse", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 60, 2))

	l.Allow("c", "/score-text", "POST")
	l.Allow("c", "/score-text", "POST")
	allowed, _ := l.Allow("c", "/score-text", "POST")
	require.False(t, allowed)

	clock.advance(time.Second)

	allowed, _ = l.Allow("c", "/score-text", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/score-text", "POST")
	assert.False(t, allowed)
}

func TestLimiter_ResetTime(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 60, 5))

	_, info := l.Allow("c", "/parse", "POST")
	assert.Equal(t, clock.now().Add(time.Second), info.ResetTime)
}

func TestLimiter_SeparateClientsAndEndpoints(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 1))

	allowed, _ := l.Allow("a", "/parse", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("b", "/parse", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/score-text", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/parse", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 3, l.Len())
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	cfg := NewConfig(true, 60, 1)
	cfg.Whitelist = ParseIPList("10.0.0.1, 10.0.0.2")
	cfg.Blacklist = ParseIPList("10.0.0.9")
	l, _ := newTestLimiter(cfg)

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/parse", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.9", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(false, 1, 1))

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("c", "/parse", "POST")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 1))

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = l.Allow("c", "/model-info", "GET")
		assert.True(t, allowed)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 1))

	allowed, info := l.Allow("c", "/unknown", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
	allowed, _ = l.Allow("c", "/unknown", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 50))

	var allowedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/parse", "POST"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowedCount.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 60, 5))

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/parse", "POST")
	}
	clock.advance(30 * time.Minute)
	l.Allow("client-0", "/parse", "POST")
	clock.advance(45 * time.Minute)

	l.cleanupBuckets()

	assert.Equal(t, 1, l.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: 1},
		{Path: "/files/", Method: "GET", Limit: 2},
	}

	assert.Equal(t, 1, MatchEndpoint("/parse", "POST", configs).Limit)
	assert.Equal(t, 2, MatchEndpoint("/files/abc", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/parse", "GET", configs))
	assert.Zero(t, MatchEndpoint("/health", "GET", configs).Limit)
}
