package state

import (
	"strings"

	"startpage/internal/suggest"
)

// State contains all the search control state. It is a value type; Reduce
// returns a new State and never mutates slices it was given.
type State struct {
	// Query mirrors the text input
	Query string

	// Suggestions is the last accepted suggestion list
	Suggestions []string
	// History holds the history rows that match the current query
	History []string

	// Highlight indexes the visible dropdown, -1 when nothing is highlighted
	Highlight int

	ShowSuggestions bool
	ShowHistory     bool
	ShowEngineMenu  bool
	EngineCursor    int
	Focused         bool
}

// New returns the state at mount time
func New() State {
	return State{Highlight: -1}
}

// Visible returns the rows of the dropdown currently on screen
func (s State) Visible() []string {
	switch {
	case s.ShowSuggestions:
		return s.Suggestions
	case s.ShowHistory:
		return s.History
	default:
		return nil
	}
}

// Selected returns the highlighted row of the visible dropdown
func (s State) Selected() (string, bool) {
	items := s.Visible()
	if s.Highlight < 0 || s.Highlight >= len(items) {
		return "", false
	}
	return items[s.Highlight], true
}

// DropdownOpen reports whether a suggestion or history dropdown is shown
func (s State) DropdownOpen() bool {
	return s.ShowSuggestions || s.ShowHistory
}

// Valid checks the invariants every reduced state satisfies
func (s State) Valid() bool {
	if s.ShowSuggestions && s.ShowHistory {
		return false
	}
	return s.Highlight >= -1 && s.Highlight < len(s.Visible())
}

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// TextChanged is sent when the query text changes. History carries the
// history rows matching the new text.
type TextChanged struct {
	Text    string
	History []string
}

// SuggestionsLoaded carries a fetch result that was accepted as current
type SuggestionsLoaded struct {
	Items []string
}

// HighlightMoved moves the dropdown highlight by Delta rows
type HighlightMoved struct {
	Delta int
}

// Dismissed is the Escape key
type Dismissed struct{}

// Submitted is sent after a search was dispatched
type Submitted struct{}

// FocusGained is sent when the input receives focus
type FocusGained struct {
	History []string
}

// OutsideClicked is a mouse press outside the search control
type OutsideClicked struct{}

// EngineMenuToggled opens or closes the engine menu. Current is the index of
// the selected engine, where the cursor starts.
type EngineMenuToggled struct {
	Current int
}

// EngineCursorMoved moves the engine menu cursor within [0, Count-1]
type EngineCursorMoved struct {
	Delta int
	Count int
}

// EngineChosen closes the engine menu after a selection
type EngineChosen struct{}

// HistoryChanged is sent after history entries were removed or cleared
type HistoryChanged struct {
	History []string
}

func (TextChanged) isEvent()       {}
func (SuggestionsLoaded) isEvent() {}
func (HighlightMoved) isEvent()    {}
func (Dismissed) isEvent()         {}
func (Submitted) isEvent()         {}
func (FocusGained) isEvent()       {}
func (OutsideClicked) isEvent()    {}
func (EngineMenuToggled) isEvent() {}
func (EngineCursorMoved) isEvent() {}
func (EngineChosen) isEvent()      {}
func (HistoryChanged) isEvent()    {}

// Reduce applies e to s. It is the only place visibility flags change.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case TextChanged:
		s.Query = e.Text
		s.History = e.History
		s.Highlight = -1
		if strings.TrimSpace(e.Text) == "" {
			s.Suggestions = nil
			s.ShowSuggestions = false
			s.ShowHistory = s.Focused && len(s.History) > 0
		} else {
			// The previous list is kept but hidden; only a response for
			// this text shows it again.
			s.ShowHistory = false
			s.ShowSuggestions = false
		}

	case SuggestionsLoaded:
		if strings.TrimSpace(s.Query) == "" {
			return s
		}
		s.Suggestions = suggest.Truncate(e.Items, suggest.MaxItems)
		s.ShowSuggestions = len(s.Suggestions) > 0 && s.Focused && !s.ShowEngineMenu
		if s.ShowSuggestions {
			s.ShowHistory = false
		}
		s.Highlight = -1

	case HighlightMoved:
		n := len(s.Visible())
		if n == 0 {
			s.Highlight = -1
			return s
		}
		s.Highlight = clamp(s.Highlight+e.Delta, -1, n-1)

	case Dismissed:
		switch {
		case s.ShowEngineMenu:
			s.ShowEngineMenu = false
		case s.DropdownOpen():
			s.ShowSuggestions = false
			s.ShowHistory = false
			s.Highlight = -1
		case s.Focused:
			s.Focused = false
		}

	case Submitted:
		s = closeAll(s)
		s.Focused = false

	case FocusGained:
		s.Focused = true
		s.History = e.History
		if !s.ShowSuggestions && !s.ShowEngineMenu {
			s.ShowHistory = len(s.History) > 0 && strings.TrimSpace(s.Query) == ""
			s.Highlight = -1
		}

	case OutsideClicked:
		s = closeAll(s)
		s.Focused = false

	case EngineMenuToggled:
		if s.ShowEngineMenu {
			s.ShowEngineMenu = false
			return s
		}
		s.ShowEngineMenu = true
		s.ShowSuggestions = false
		s.ShowHistory = false
		s.Highlight = -1
		s.EngineCursor = max(e.Current, 0)

	case EngineCursorMoved:
		if !s.ShowEngineMenu || e.Count <= 0 {
			return s
		}
		s.EngineCursor = clamp(s.EngineCursor+e.Delta, 0, e.Count-1)

	case EngineChosen:
		s.ShowEngineMenu = false

	case HistoryChanged:
		s.History = e.History
		if len(s.History) == 0 {
			s.ShowHistory = false
		}
		switch {
		case s.ShowHistory:
			s.Highlight = clamp(s.Highlight, -1, len(s.History)-1)
		case !s.ShowSuggestions:
			s.Highlight = -1
		}
	}
	return s
}

func closeAll(s State) State {
	s.ShowSuggestions = false
	s.ShowHistory = false
	s.ShowEngineMenu = false
	s.Highlight = -1
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
