package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"startpage/internal/ui/input/types"
)

type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.MoveHighlightAction{Delta: -1}}, true

	case "down", "ctrl+n":
		if !ctx.DropdownOpen() {
			// Reopens the history dropdown after Esc closed it
			return []types.Action{types.FocusAction{}}, true
		}
		return []types.Action{types.MoveHighlightAction{Delta: 1}}, true

	case "ctrl+e":
		return []types.Action{types.ToggleEngineMenuAction{}}, true

	case "ctrl+d":
		// ctrl+d deletes forward in the text input unless a history row is highlighted
		if ctx.HistoryHighlighted() {
			return []types.Action{types.RemoveHistoryAction{}}, true
		}
		return nil, false

	case "ctrl+x":
		if ctx.HistoryVisible() {
			return []types.Action{types.ClearHistoryAction{}}, true
		}
		return nil, true

	case "ctrl+o":
		return []types.Action{types.ShowHistoryAction{}}, true

	case "f1":
		return []types.Action{types.ShowHelpAction{}}, true
	}

	return m.TextInputMode.HandleKey(msg, ctx)
}
