// Package history keeps the most-recent-first list of submitted queries.
//
// The list never holds the same string twice and never grows past its cap.
// Every mutation is written through to the key-value store immediately;
// storage failures are logged and otherwise ignored.
package history

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"startpage/internal/storage"
)

// DropdownLimit is how many matching entries the history dropdown shows
const DropdownLimit = 10

// Service owns the in-memory history and its persistence
type Service struct {
	mu      sync.RWMutex
	entries []string
	cap     int
	kv      storage.KV
	logger  *zap.Logger
}

// New creates a history service. Call Load before use.
func New(kv storage.KV, cap int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cap <= 0 {
		cap = 1
	}
	return &Service{
		cap:    cap,
		kv:     kv,
		logger: logger.Named("history"),
	}
}

// Load reads the persisted list. Absent or corrupt data yields an empty
// history.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	raw, ok, err := s.kv.Get(ctx, storage.KeyHistory)
	if err != nil {
		s.logger.Warn("failed to read history", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("discarding corrupt history", zap.Error(err))
		return
	}

	// Rebuild through Push so older data that predates the cap or contains
	// duplicates still satisfies the invariants.
	for i := len(stored) - 1; i >= 0; i-- {
		if q := strings.TrimSpace(stored[i]); q != "" {
			s.entries = Push(s.entries, q, s.cap)
		}
	}
	s.logger.Debug("history loaded", zap.Int("entries", len(s.entries)))
}

// Add records a submitted query. Blank queries are ignored and reported
// with false.
func (s *Service) Add(ctx context.Context, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = Push(s.entries, query, s.cap)
	s.persist(ctx)
	return true
}

// Remove deletes the entry equal to query. It reports whether one existed.
func (s *Service) Remove(ctx context.Context, query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := Without(s.entries, query)
	if !removed {
		return false
	}
	s.entries = next
	s.persist(ctx)
	return true
}

// Clear drops every entry and deletes the stored key
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.kv.Delete(ctx, storage.KeyHistory); err != nil {
		s.logger.Warn("failed to clear history", zap.Error(err))
	}
}

// Entries returns a copy of the list, most recent first
func (s *Service) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Cap returns the configured bound
func (s *Service) Cap() int {
	return s.cap
}

// Filter returns up to limit entries containing text, case-insensitively.
// Blank text matches everything. limit <= 0 means no limit.
func (s *Service) Filter(text string, limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(text))
	var out []string
	for _, e := range s.entries {
		if needle != "" && !strings.Contains(strings.ToLower(e), needle) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// persist must be called with s.mu held
func (s *Service) persist(ctx context.Context) {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("failed to encode history", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, storage.KeyHistory, string(data)); err != nil {
		s.logger.Warn("failed to persist history", zap.Error(err))
	}
}

// Push moves query to the front of list, removing any earlier copy, and
// truncates the result to cap entries. list is not modified.
func Push(list []string, query string, cap int) []string {
	if cap < 1 {
		cap = 1
	}
	next := make([]string, 0, min(len(list)+1, cap))
	next = append(next, query)
	for _, e := range list {
		if len(next) == cap {
			break
		}
		if e != query {
			next = append(next, e)
		}
	}
	return next
}

// Without returns list minus the first entry equal to query, keeping the
// order of the rest.
func Without(list []string, query string) ([]string, bool) {
	for i, e := range list {
		if e == query {
			next := make([]string, 0, len(list)-1)
			next = append(next, list[:i]...)
			return append(next, list[i+1:]...), true
		}
	}
	return list, false
}
