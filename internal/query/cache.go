package query

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the state of a query result.
type Status string

// Result states.
const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "error"
)

// Result is what a query observer sees.
type Result struct {
	// Data is the last successful body for the key. It may be present
	// alongside Err when a refetch failed.
	Data json.RawMessage

	// Err is the failure of the latest fetch, if any.
	Err error

	Status    Status
	UpdatedAt time.Time

	// FromCache is set when no request was made.
	FromCache bool
}

// IsSuccess reports whether the latest fetch succeeded.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Decode unmarshals Data into v. Without data the fetch error is returned.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 && r.Err != nil {
		return r.Err
	}
	return json.Unmarshal(r.Data, v)
}

func resultOf(data []byte, err error) Result {
	if err != nil {
		return Result{Err: err, Status: StatusFailed}
	}
	return Result{Data: data, Status: StatusSuccess, UpdatedAt: time.Now()}
}

type entry struct {
	data      []byte
	updatedAt time.Time
}

// Cache stores successful results per key. Entries younger than StaleTime
// are served without a request. Concurrent misses for one key share a
// single fetch, run with the first caller's context.
type Cache struct {
	// StaleTime is how long a result is served from cache. Zero always refetches.
	StaleTime time.Duration

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache with the given staleness window. The zero value
// is also ready to use.
func NewCache(staleTime time.Duration) *Cache {
	return &Cache{
		StaleTime: staleTime,
		entries:   make(map[string]entry),
		now:       time.Now,
	}
}

// Get returns the cached result for key regardless of staleness.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	return Result{Data: e.data, Status: StatusSuccess, UpdatedAt: e.updatedAt, FromCache: true}, true
}

// Invalidate drops key so the next Fetch requests again.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Fetch returns a fresh cached result or runs fn. A failed fetch keeps the
// previous data and reports the error; errors are never cached.
func (c *Cache) Fetch(ctx context.Context, key string, fn func(ctx context.Context) ([]byte, error)) Result {
	c.mu.Lock()
	c.lazyInit()
	prev, ok := c.entries[key]
	now := c.now()
	if ok && now.Sub(prev.updatedAt) < c.StaleTime {
		c.mu.Unlock()
		return Result{Data: prev.data, Status: StatusSuccess, UpdatedAt: prev.updatedAt, FromCache: true}
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		res := Result{Err: err, Status: StatusFailed}
		if ok {
			res.Data = prev.data
			res.UpdatedAt = prev.updatedAt
		}
		return res
	}

	data, _ := v.([]byte)
	c.mu.Lock()
	c.lazyInit()
	e := entry{data: data, updatedAt: c.now()}
	c.entries[key] = e
	c.mu.Unlock()

	return Result{Data: data, Status: StatusSuccess, UpdatedAt: e.updatedAt}
}

// lazyInit fills in fields a zero-value Cache lacks. Callers hold mu.
func (c *Cache) lazyInit() {
	if c.entries == nil {
		c.entries = make(map[string]entry)
	}
	if c.now == nil {
		c.now = time.Now
	}
}
