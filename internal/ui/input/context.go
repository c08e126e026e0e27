package input

import (
	"startpage/internal/ui/input/types"
	"startpage/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State   state.State
	Engines int
}

// DropdownOpen reports whether suggestions or history are shown
func (c ModelContext) DropdownOpen() bool {
	return c.State.DropdownOpen()
}

// HistoryVisible reports whether the history dropdown is shown
func (c ModelContext) HistoryVisible() bool {
	return c.State.ShowHistory
}

// HistoryHighlighted reports whether a history row is highlighted
func (c ModelContext) HistoryHighlighted() bool {
	_, ok := c.State.Selected()
	return ok && c.State.ShowHistory
}

// EngineCount returns the number of selectable engines
func (c ModelContext) EngineCount() int {
	return c.Engines
}

// ModeFor derives the input mode from the search state
func ModeFor(s state.State) types.Mode {
	switch {
	case s.ShowEngineMenu:
		return types.ModeEngineMenu
	case s.Focused:
		return types.ModeSearch
	default:
		return types.ModeIdle
	}
}
