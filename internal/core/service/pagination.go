package service

import (
	"context"
	"sync"
	"time"

	"waifubot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Page is a snapshot of one user's search state.
type Page struct {
	Query   string
	Number  int
	Results []domain.SearchResult
}

type pageEntry struct {
	query      string
	page       int
	results    []domain.SearchResult
	lastAccess time.Time
}

// PageCache holds per-user search pagination state. Entries are evicted
// after ttl of inactivity so abandoned searches do not accumulate.
type PageCache struct {
	mu      sync.Mutex
	entries map[string]*pageEntry
	ttl     time.Duration
}

func NewPageCache(ctx context.Context, ttl time.Duration) *PageCache {
	c := &PageCache{
		entries: make(map[string]*pageEntry),
		ttl:     ttl,
	}

	go c.evictLoop(ctx)

	return c
}

// Start creates or overwrites the user's entry at page 1.
func (c *PageCache) Start(userID, query string, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = &pageEntry{
		query:      query,
		page:       1,
		results:    results,
		lastAccess: time.Now(),
	}
}

// Advance computes the page the action moves to. "next" always increments;
// "prev" floors at page 1. The returned flag tells the caller whether a
// fresh fetch is needed. The stored pointer does not move until the caller
// commits the fetched page with SetResults, so a failed fetch leaves the
// previous page intact. A missing entry is domain.ErrNotFound.
func (c *PageCache) Advance(userID, action string) (Page, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return Page{}, false, domain.ErrNotFound
	}

	entry.lastAccess = time.Now()

	page := entry.page
	fetch := false
	switch action {
	case domain.PageNext:
		page++
		fetch = true
	case domain.PagePrev:
		if page > 1 {
			page--
			fetch = true
		}
	}

	return Page{Query: entry.query, Number: page, Results: entry.results}, fetch, nil
}

// SetResults commits a fetched page: pointer and results move together.
func (c *PageCache) SetResults(userID string, page int, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return
	}

	entry.page = page
	entry.results = results
	entry.lastAccess = time.Now()
}

// Current returns the user's page snapshot without moving the pointer.
func (c *PageCache) Current(userID string) (Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return Page{}, domain.ErrNotFound
	}

	return Page{Query: entry.query, Number: entry.page, Results: entry.results}, nil
}

func (c *PageCache) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictStale()
		case <-ctx.Done():
			log.Debug().Msg("stopping pagination cache eviction")
			return
		}
	}
}

func (c *PageCache) evictStale() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for userID, entry := range c.entries {
		if time.Since(entry.lastAccess) > c.ttl {
			log.Debug().Str("userId", userID).Msg("evicting stale search state")
			delete(c.entries, userID)
		}
	}
}
