package types

// Focus actions
type FocusAction struct{}

func (a FocusAction) Type() string { return "focus" }

type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// Dropdown navigation
type MoveHighlightAction struct {
	Delta int
}

func (a MoveHighlightAction) Type() string { return "move_highlight" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitAction searches for the highlighted row, or the raw text when
// nothing is highlighted
type SubmitAction struct {
	Text string
}

func (a SubmitAction) Type() string { return "submit" }

// Engine menu actions
type ToggleEngineMenuAction struct{}

func (a ToggleEngineMenuAction) Type() string { return "toggle_engine_menu" }

type MoveEngineCursorAction struct {
	Delta int
}

func (a MoveEngineCursorAction) Type() string { return "move_engine_cursor" }

type ChooseEngineAction struct {
	Index int // -1 for the cursor row
}

func (a ChooseEngineAction) Type() string { return "choose_engine" }

// History actions
type RemoveHistoryAction struct{}

func (a RemoveHistoryAction) Type() string { return "remove_history" }

type ClearHistoryAction struct{}

func (a ClearHistoryAction) Type() string { return "clear_history" }

// Pager actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type ShowHistoryAction struct{}

func (a ShowHistoryAction) Type() string { return "show_history" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
