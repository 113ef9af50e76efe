package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// localStore keeps one token bucket per key in process memory
type localStore struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLocalStore(rps float64, burst int, idleTTL time.Duration) *localStore {
	return &localStore{
		entries: make(map[string]*localEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
	}
}

func (s *localStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &localEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *localStore) allow(key string, now time.Time) Decision {
	lim := s.get(key, now)

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return Decision{Allowed: false, Limit: s.burst}
	}

	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, Limit: s.burst, RetryAfter: delay}
	}

	return Decision{
		Allowed:   true,
		Limit:     s.burst,
		Remaining: int(lim.TokensAt(now)),
	}
}

// cleanup drops buckets that have not been used for idleTTL
func (s *localStore) cleanup(now time.Time) {
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func (s *localStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
