// Package preferences persists the selected search engine.
package preferences

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"startpage/internal/domain"
	"startpage/internal/engines"
	"startpage/internal/storage"
)

// Store reads and writes the selected-engine key
type Store struct {
	kv       storage.KV
	fallback string
	logger   *zap.Logger
}

// New creates a preference store. fallbackID is used when nothing valid is
// stored; an unknown fallbackID falls back to the catalog default.
func New(kv storage.KV, fallbackID string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, fallback: fallbackID, logger: logger.Named("preferences")}
}

// LoadEngine returns the stored engine, or the fallback when the value is
// absent, unreadable or names an engine that no longer exists.
func (s *Store) LoadEngine(ctx context.Context) domain.Engine {
	def := engines.LookupOrDefault(s.fallback)

	id, ok, err := s.kv.Get(ctx, storage.KeyEngine)
	if err != nil {
		s.logger.Warn("failed to read selected engine", zap.Error(err))
		return def
	}
	if !ok {
		return def
	}

	e, found := engines.Lookup(strings.TrimSpace(id))
	if !found {
		s.logger.Info("ignoring unknown stored engine", zap.String("id", id))
		return def
	}
	return e
}

// SaveEngine persists the engine identifier. Failures are logged only.
func (s *Store) SaveEngine(ctx context.Context, e domain.Engine) {
	if err := s.kv.Set(ctx, storage.KeyEngine, e.ID); err != nil {
		s.logger.Warn("failed to persist selected engine", zap.String("id", e.ID), zap.Error(err))
	}
}
