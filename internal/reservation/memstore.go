package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// MemoryStore keeps the reservation set in process memory. It is the
// default backend for a single-shop deployment; the pgx store provides the
// durable alternative.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*Reservation
	byParty map[string][]*Reservation // creation order per party
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*Reservation),
		byParty: make(map[string][]*Reservation),
	}
}

func (s *MemoryStore) Create(_ context.Context, r *Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *r
	s.byID[clone.ID] = &clone
	s.byParty[clone.PartyID] = append(s.byParty[clone.PartyID], &clone)
	return nil
}

func (s *MemoryStore) ActiveByParty(_ context.Context, partyID string) (*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.byParty[partyID] {
		if r.Status == StatusActive {
			clone := *r
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ActiveOnDate(_ context.Context, date schedule.Date) ([]*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Reservation
	for _, parties := range s.byParty {
		for _, r := range parties {
			if r.Status == StatusActive && r.Date == date {
				clone := *r
				out = append(out, &clone)
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) SetStatus(_ context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) HistoryByParty(_ context.Context, partyID string) ([]*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.byParty[partyID]
	out := make([]*Reservation, 0, len(entries))
	for _, r := range entries {
		clone := *r
		out = append(out, &clone)
	}
	return out, nil
}
