package service

import (
	"context"
	"sync"
	"time"

	"waifubot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type pendingRoll struct {
	character domain.Character
	rolledAt  time.Time
}

// RollTracker keeps at most one pending gacha roll per user. A new roll
// overwrites the previous one; a claim consumes it. Lock serializes roll
// and claim for the same user so a claim cannot race a concurrent re-roll.
// Pending rolls expire after ttl.
type RollTracker struct {
	mu      sync.Mutex
	pending map[string]*pendingRoll
	locks   map[string]*sync.Mutex
	ttl     time.Duration
}

func NewRollTracker(ctx context.Context, ttl time.Duration) *RollTracker {
	t := &RollTracker{
		pending: make(map[string]*pendingRoll),
		locks:   make(map[string]*sync.Mutex),
		ttl:     ttl,
	}

	go t.evictLoop(ctx)

	return t
}

// Lock acquires the user's roll/claim mutex and returns the unlock func.
func (t *RollTracker) Lock(userID string) func() {
	t.mu.Lock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (t *RollTracker) Put(userID string, c domain.Character) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending[userID] = &pendingRoll{character: c, rolledAt: time.Now()}
}

func (t *RollTracker) Peek(userID string) (domain.Character, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	roll, ok := t.pending[userID]
	if !ok {
		return domain.Character{}, false
	}

	return roll.character, true
}

func (t *RollTracker) Remove(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.pending, userID)
}

func (t *RollTracker) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(t.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.evictStale()
		case <-ctx.Done():
			log.Debug().Msg("stopping roll tracker eviction")
			return
		}
	}
}

func (t *RollTracker) evictStale() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for userID, roll := range t.pending {
		if time.Since(roll.rolledAt) > t.ttl {
			log.Debug().Str("userId", userID).Msg("expiring pending roll")
			delete(t.pending, userID)
		}
	}
}
