package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newFixedClockCache(start time.Time) (*TTLCache, *time.Time) {
	c := New()
	now := start
	c.Now = func() time.Time { return now }
	return c, &now
}

func TestTTLCache_MissThenHit(t *testing.T) {
	c, _ := newFixedClockCache(time.Unix(1000, 0))

	_, ok := c.Get("approvedCourses")
	assert.False(t, ok, "empty cache must miss")

	c.Set("approvedCourses", []string{"a", "b"}, time.Minute)

	got, ok := c.Get("approvedCourses")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTTLCache_ExpiresAfterTTL(t *testing.T) {
	c, now := newFixedClockCache(time.Unix(1000, 0))

	c.Set("k", "v", 30*time.Second)

	*now = now.Add(29 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "read inside the TTL window must hit")

	*now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "read past the TTL window must miss")
}

func TestTTLCache_BoundaryIsAMiss(t *testing.T) {
	c, now := newFixedClockCache(time.Unix(1000, 0))

	c.Set("k", "v", 30*time.Second)
	*now = now.Add(30 * time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok, "now - computedAt == ttl is stale")
}

func TestTTLCache_InvalidateClearsOnlyNamedKeys(t *testing.T) {
	c, _ := newFixedClockCache(time.Unix(1000, 0))

	c.Set("pending", 1, time.Minute)
	c.Set("approved", 2, time.Minute)

	c.Invalidate("pending")

	_, ok := c.Get("pending")
	assert.False(t, ok)
	_, ok = c.Get("approved")
	assert.True(t, ok)
}

func TestTTLCache_SetRefreshesTimestamp(t *testing.T) {
	c, now := newFixedClockCache(time.Unix(1000, 0))

	c.Set("k", "old", 30*time.Second)
	*now = now.Add(25 * time.Second)
	c.Set("k", "new", 30*time.Second)
	*now = now.Add(10 * time.Second)

	got, ok := c.Get("k")
	assert.True(t, ok, "rewrite restarts the TTL window")
	assert.Equal(t, "new", got)
}
