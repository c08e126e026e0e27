package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"startpage/internal/ui/input/modes"
	"startpage/internal/ui/input/types"
)

// Handler routes key messages to the active mode and owns the text input
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New(placeholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 512

	h := &Handler{
		currentMode: types.ModeIdle,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeIdle] = modes.NewIdleMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeEngineMenu] = modes.NewEngineMenuMode()

	return h
}

// HandleKey runs msg through the current mode. Keys the search mode does not
// consume are passed to the text input; an UpdateTextAction is emitted only
// when the value actually changed.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed || h.currentMode != types.ModeSearch {
		return actions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, types.UpdateTextAction{Text: after})
	}
	return actions, cmd
}

// ChangeMode switches modes, running the Exit and Enter hooks
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}

	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	var cmd tea.Cmd
	if mode == types.ModeSearch {
		cmd = textinput.Blink
	}
	return actions, cmd
}

// CurrentMode returns the current input mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeIdle
	}
	return h.currentMode
}

// Value returns the text in the input
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetValue replaces the text and moves the cursor to the end
func (h *Handler) SetValue(s string) {
	h.textInput.SetValue(s)
	h.textInput.CursorEnd()
}

// SetWidth sets the visible width of the text input
func (h *Handler) SetWidth(w int) {
	h.textInput.Width = w
}

// View renders the text input
func (h *Handler) View() string {
	return h.textInput.View()
}

// Update handles non-keyboard messages for text input, e.g. cursor blink
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSearch {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
