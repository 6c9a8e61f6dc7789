package reaction

import (
	"sync"
	"time"
)

// DefaultLifetime is how long a reaction stays on screen.
const DefaultLifetime = 2 * time.Second

// Token is one transient reaction animation. Identical symbols enqueued
// together stay independent tokens with their own id and expiry.
type Token struct {
	ID        int64
	Symbol    string
	ExpiresAt time.Time
}

// Scheduler turns received reaction events into a self-expiring token queue.
// It holds no authority, only decays: a token is live for every instant
// strictly before its expiry and gone from the first instant at or past it.
type Scheduler struct {
	mu       sync.Mutex
	lifetime time.Duration
	nextID   int64
	tokens   []Token
}

func NewScheduler(lifetime time.Duration) *Scheduler {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Scheduler{lifetime: lifetime}
}

func (s *Scheduler) Lifetime() time.Duration {
	return s.lifetime
}

// Enqueue registers a reaction received at now and returns its token.
func (s *Scheduler) Enqueue(symbol string, now time.Time) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := Token{
		ID:        s.nextID,
		Symbol:    symbol,
		ExpiresAt: now.Add(s.lifetime),
	}
	s.nextID++
	s.tokens = append(s.tokens, token)
	return token
}

// Live prunes expired tokens and returns the ones still animating at now.
func (s *Scheduler) Live(now time.Time) []Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tokens[:0]
	for _, token := range s.tokens {
		if now.Before(token.ExpiresAt) {
			kept = append(kept, token)
		}
	}
	s.tokens = kept

	out := make([]Token, len(kept))
	copy(out, kept)
	return out
}

// Clear drops every pending token. Called when the owning view goes away.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
}
