package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestCache(stale time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(stale)
	c.now = clock.now
	return c, clock
}

func constFetch(calls *int, data string) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		*calls++
		return []byte(data), nil
	}
}

func TestCache_FreshServedStaleRefetched(t *testing.T) {
	c, clock := newTestCache(10 * time.Second)
	calls := 0

	c.Fetch(context.Background(), "k", constFetch(&calls, "1"))
	clock.t = clock.t.Add(5 * time.Second)
	res := c.Fetch(context.Background(), "k", constFetch(&calls, "2"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "1", string(res.Data))
	assert.True(t, res.FromCache)

	clock.t = clock.t.Add(10 * time.Second)
	res = c.Fetch(context.Background(), "k", constFetch(&calls, "2"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "2", string(res.Data))
	assert.False(t, res.FromCache)
}

func TestCache_ZeroStaleTimeAlwaysRefetches(t *testing.T) {
	c, _ := newTestCache(0)
	calls := 0
	c.Fetch(context.Background(), "k", constFetch(&calls, "1"))
	c.Fetch(context.Background(), "k", constFetch(&calls, "1"))
	assert.Equal(t, 2, calls)
}

func TestCache_ErrorKeepsPreviousDataAndIsNotCached(t *testing.T) {
	c, clock := newTestCache(time.Second)
	calls := 0
	c.Fetch(context.Background(), "k", constFetch(&calls, "ok"))

	clock.t = clock.t.Add(2 * time.Second)
	boom := errors.New("boom")
	res := c.Fetch(context.Background(), "k", func(context.Context) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "ok", string(res.Data))

	res = c.Fetch(context.Background(), "k", constFetch(&calls, "again"))
	require.NoError(t, res.Err)
	assert.Equal(t, "again", string(res.Data))
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	calls := 0
	c.Fetch(context.Background(), "a", constFetch(&calls, "a"))
	res := c.Fetch(context.Background(), "b", constFetch(&calls, "b"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "b", string(res.Data))
}

func TestCache_InvalidateAndClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	calls := 0
	c.Fetch(context.Background(), "a", constFetch(&calls, "a"))
	c.Fetch(context.Background(), "b", constFetch(&calls, "b"))

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", string(got.Data))

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_ConcurrentMissesShareOneFetch(t *testing.T) {
	c := NewCache(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("x"), nil
	}

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Fetch(context.Background(), "k", fetch)
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "x", string(r.Data))
	}
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestCache_ZeroValueUsable(t *testing.T) {
	c := &Cache{StaleTime: time.Minute}
	calls := 0

	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Invalidate("k")

	res := c.Fetch(context.Background(), "k", constFetch(&calls, `"v"`))
	require.NoError(t, res.Err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.False(t, res.UpdatedAt.IsZero())

	res = c.Fetch(context.Background(), "k", constFetch(&calls, `"w"`))
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, calls)

	cached, ok := c.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `"v"`, string(cached.Data))
}
