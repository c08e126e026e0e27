package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"startpage/internal/ui/input/types"
)

// IdleMode handles keys while the search input is blurred
type IdleMode struct{}

func NewIdleMode() *IdleMode {
	return &IdleMode{}
}

func (m *IdleMode) Name() string {
	return "idle"
}

func (m *IdleMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *IdleMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *IdleMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true

	case tea.KeyEsc:
		// Nothing is open on an unfocused page
		return nil, true

	case tea.KeyEnter:
		return []types.Action{types.FocusAction{}}, true
	}

	switch msg.String() {
	case "/", "i":
		return []types.Action{types.FocusAction{}}, true

	case "?", "f1":
		return []types.Action{types.ShowHelpAction{}}, true

	case "ctrl+e", "e":
		return []types.Action{types.ToggleEngineMenuAction{}}, true

	case "ctrl+o", "H":
		return []types.Action{types.ShowHistoryAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
