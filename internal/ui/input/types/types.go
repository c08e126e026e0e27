package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeIdle is the page with the input blurred
	ModeIdle Mode = iota
	// ModeSearch is the focused search input
	ModeSearch
	// ModeEngineMenu is the open engine selector
	ModeEngineMenu
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeEngineMenu:
		return "engine-menu"
	default:
		return "idle"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	DropdownOpen() bool
	HistoryVisible() bool
	HistoryHighlighted() bool
	EngineCount() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
