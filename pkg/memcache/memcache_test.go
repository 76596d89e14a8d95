package memcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestSetAndGet(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.Set("key", "value", time.Minute)

	v, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestGetAfterAbsoluteTTL(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.Set("key", "value", time.Minute)

	clock.Advance(59 * time.Second)
	_, ok := store.Get("key")
	assert.True(t, ok)

	// The deadline itself is already expired.
	clock.Advance(time.Second)
	_, ok = store.Get("key")
	assert.False(t, ok)
}

func TestSlidingWindowExpiresWithoutAccess(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.SetWithSliding("key", "value", time.Minute, 30*time.Second)

	clock.Advance(30 * time.Second)
	_, ok := store.Get("key")
	assert.False(t, ok)
}

func TestSlidingWindowExtendsOnAccess(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.SetWithSliding("key", "value", time.Minute, 30*time.Second)

	clock.Advance(20 * time.Second)
	_, ok := store.Get("key")
	require.True(t, ok)

	// The read pushed the deadline to t+50s.
	clock.Advance(25 * time.Second)
	_, ok = store.Get("key")
	assert.True(t, ok)
}

func TestSlidingWindowNeverOutlivesAbsoluteTTL(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.SetWithSliding("key", "value", time.Minute, 30*time.Second)

	// Keep the entry hot with a read every 20 seconds.
	for i := 0; i < 2; i++ {
		clock.Advance(20 * time.Second)
		_, ok := store.Get("key")
		require.True(t, ok)
	}

	clock.Advance(20 * time.Second)
	_, ok := store.Get("key")
	assert.False(t, ok)
}

func TestSetOverwritesEntry(t *testing.T) {
	clock := newFakeClock()
	store := memcache.New()
	store.SetNowFunc(clock.Now)

	store.Set("key", "old", time.Second)
	store.Set("key", "new", time.Minute)

	clock.Advance(30 * time.Second)
	v, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestDelete(t *testing.T) {
	store := memcache.New()

	store.Set("key", "value", time.Minute)
	store.Delete("key")

	_, ok := store.Get("key")
	assert.False(t, ok)
}
