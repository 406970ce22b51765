// Package chatcache bounds upstream load with a single-slot TTL cache over
// the full chat listing. There is exactly one slot because the service runs
// against a single Beeper account; no per-query keying exists.
package chatcache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/antighoster/antighoster/internal/model"
)

// Fetcher lists every chat from upstream. *beeper.Client satisfies it.
type Fetcher interface {
	ListAllChats(ctx context.Context) ([]model.RawChat, error)
}

// Cache holds the last full fetch and its instant. All access goes through
// the mutex: the (fetchedAt, chats) pair is a critical section once handlers
// run concurrently, otherwise overlapping requests degrade to duplicate
// upstream fetches.
type Cache struct {
	mu    sync.Mutex
	fetch Fetcher
	ttl   time.Duration

	fetchedAt time.Time
	chats     []model.RawChat
	valid     bool
}

// New creates an empty cache that refreshes through f at most once per ttl.
func New(f Fetcher, ttl time.Duration) *Cache {
	return &Cache{fetch: f, ttl: ttl}
}

// Get returns the cached chat list, refetching synchronously when the slot
// is empty, invalidated, or older than the TTL. A failed refresh leaves the
// previous slot in place and propagates the error; stale data is never
// served past the TTL.
func (c *Cache) Get(ctx context.Context, now time.Time) ([]model.RawChat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && now.Sub(c.fetchedAt) < c.ttl {
		return c.chats, nil
	}

	chats, err := c.fetch.ListAllChats(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Int("chats", len(chats)).Msg("chat cache refreshed")
	c.fetchedAt = now
	c.chats = chats
	c.valid = true
	return chats, nil
}

// Invalidate empties the slot so the next Get refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = nil
	c.valid = false
}
