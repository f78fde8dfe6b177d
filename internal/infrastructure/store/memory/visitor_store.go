// Package memory holds visitor state in process memory for single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

type entry struct {
	state   ports.VisitorState
	expires time.Time
}

// VisitorStore implements ports.VisitorStore with a mutex-guarded map.
// Entries older than the TTL are treated as absent and pruned on write.
type VisitorStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewVisitorStore(ttl time.Duration) *VisitorStore {
	return &VisitorStore{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *VisitorStore) Load(_ context.Context, visitorID string) (ports.VisitorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[visitorID]
	if !ok || s.expired(e) {
		return ports.VisitorState{}, nil
	}
	return clone(e.state), nil
}

func (s *VisitorStore) Save(_ context.Context, visitorID string, state ports.VisitorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	s.entries[visitorID] = entry{state: clone(state), expires: s.now().Add(s.ttl)}
	return nil
}

func (s *VisitorStore) Delete(_ context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, visitorID)
	return nil
}

// Len reports the number of live entries.
func (s *VisitorStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *VisitorStore) expired(e entry) bool {
	return s.ttl > 0 && s.now().After(e.expires)
}

func (s *VisitorStore) prune() {
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

// clone keeps callers from mutating stored carts through shared slices.
func clone(state ports.VisitorState) ports.VisitorState {
	out := state
	if state.Candidate != nil {
		c := *state.Candidate
		out.Candidate = &c
	}
	if state.Cart != nil {
		out.Cart = append([]domain.LineItem(nil), state.Cart...)
	}
	return out
}
