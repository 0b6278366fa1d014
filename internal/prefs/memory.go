package prefs

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps preferences in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Entry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[string]Entry{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[key]
	if !ok {
		return "", ErrNotFound
	}
	return row.Value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key] = Entry{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	return nil
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.rows))
	for key, row := range s.rows {
		if strings.HasPrefix(key, prefix) {
			out = append(out, row)
		}
	}
	sortEntries(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
