package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"startpage/internal/ui/input/types"
)

// EngineMenuMode handles the engine selector list
type EngineMenuMode struct{}

func NewEngineMenuMode() *EngineMenuMode {
	return &EngineMenuMode{}
}

func (m *EngineMenuMode) Name() string {
	return "engine-menu"
}

func (m *EngineMenuMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *EngineMenuMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *EngineMenuMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch key := msg.String(); key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true

	case "esc":
		return []types.Action{types.DismissAction{}}, true

	case "ctrl+e", "e":
		return []types.Action{types.ToggleEngineMenuAction{}}, true

	case "up", "k", "ctrl+p":
		return []types.Action{types.MoveEngineCursorAction{Delta: -1}}, true

	case "down", "j", "ctrl+n":
		return []types.Action{types.MoveEngineCursorAction{Delta: 1}}, true

	case "home", "g":
		return []types.Action{types.MoveEngineCursorAction{Delta: -ctx.EngineCount()}}, true

	case "end", "G":
		return []types.Action{types.MoveEngineCursorAction{Delta: ctx.EngineCount()}}, true

	case "enter", " ":
		return []types.Action{types.ChooseEngineAction{Index: -1}}, true

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < ctx.EngineCount() {
			return []types.Action{types.ChooseEngineAction{Index: idx}}, true
		}
		return nil, true
	}

	// Swallow everything else so typing never leaks into the query
	return nil, true
}
