// Package suggest drives the debounced suggestion lifecycle of the search
// box. Every text change issues a new generation; timers and responses
// tagged with an older generation are dropped.
package suggest

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	fetch "startpage/internal/suggest"
)

// Service owns the generation counter and the cancel func of the request in
// flight. It is used only from the Bubble Tea update loop.
type Service struct {
	fetcher    fetch.Fetcher
	delay      time.Duration
	generation uint64
	cancel     context.CancelFunc
	logger     *zap.Logger
}

// NewService creates a new suggestion service
func NewService(fetcher fetch.Fetcher, delay time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		delay:   delay,
		logger:  logger.Named("suggest"),
	}
}

// Generation returns the latest issued generation
func (s *Service) Generation() uint64 {
	return s.generation
}

// Changed invalidates the pending timer and any request in flight, then
// schedules a debounce tick for query. A blank query schedules nothing.
func (s *Service) Changed(query string) tea.Cmd {
	gen := s.invalidate()
	if strings.TrimSpace(query) == "" || s.fetcher == nil {
		return nil
	}
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return DebounceElapsedMsg{Generation: gen, Query: query}
	})
}

// Elapsed starts the fetch for a debounce tick that is still current
func (s *Service) Elapsed(msg DebounceElapsedMsg) tea.Cmd {
	if msg.Generation != s.generation {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	fetcher := s.fetcher

	return func() tea.Msg {
		items, err := fetcher.Fetch(ctx, msg.Query)
		return ResultMsg{
			Generation: msg.Generation,
			Query:      msg.Query,
			Items:      items,
			Err:        err,
		}
	}
}

// Accept reports whether a result may replace the suggestion list. Stale,
// cancelled and failed results are rejected.
func (s *Service) Accept(msg ResultMsg) bool {
	if msg.Generation != s.generation {
		s.logger.Debug("dropping stale suggestions",
			zap.Uint64("generation", msg.Generation),
			zap.Uint64("current", s.generation),
			zap.String("query", msg.Query))
		return false
	}

	s.release()

	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			s.logger.Warn("suggestion fetch failed", zap.String("query", msg.Query), zap.Error(msg.Err))
		}
		return false
	}
	return true
}

// Cancel drops the pending timer and request without scheduling a new one
func (s *Service) Cancel() {
	s.invalidate()
}

func (s *Service) invalidate() uint64 {
	s.release()
	s.generation++
	return s.generation
}

func (s *Service) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
