package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"startpage/internal/domain"
)

// DropdownKind says which list, if any, hangs below the search box
type DropdownKind int

const (
	DropdownNone DropdownKind = iota
	DropdownSuggestions
	DropdownHistory
	DropdownEngines
)

const (
	maxBoxWidth = 72
	minBoxWidth = 24
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width        int
	Height       int
	Clock        string
	Engine       domain.Engine
	Engines      []domain.Engine
	Input        string // rendered text input
	Focused      bool
	Dropdown     DropdownKind
	Rows         []string
	Highlight    int
	HistoryTotal int
	Status       string
	StatusError  bool
	HelpModel    help.Model
	Keys         help.KeyMap
}

// Layout records where the search control was drawn, in terminal cells,
// so mouse presses can be mapped back onto it
type Layout struct {
	Left, Right int // columns [Left, Right)
	Top, Bottom int // rows [Top, Bottom)
	InputRow    int
	EngineLeft  int
	EngineRight int
	FirstRow    int // row of the first dropdown entry
	Rows        int
}

// Contains reports whether the cell is inside the search control
func (l Layout) Contains(x, y int) bool {
	return x >= l.Left && x < l.Right && y >= l.Top && y < l.Bottom
}

// OnEngine reports whether the cell is on the engine label
func (l Layout) OnEngine(x, y int) bool {
	return y == l.InputRow && x >= l.EngineLeft && x < l.EngineRight
}

// RowAt maps a cell to a dropdown entry index
func (l Layout) RowAt(x, y int) (int, bool) {
	if l.Rows == 0 || x < l.Left || x >= l.Right {
		return -1, false
	}
	i := y - l.FirstRow
	if i < 0 || i >= l.Rows {
		return -1, false
	}
	return i, true
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view and the layout of the search control
func (r *Renderer) Render(s ViewState) (string, Layout) {
	boxWidth := min(maxBoxWidth, s.Width-4)
	if boxWidth < minBoxWidth {
		boxWidth = min(minBoxWidth, s.Width)
	}
	left := max((s.Width-boxWidth)/2, 0)
	inner := max(boxWidth-4, 1) // border and padding

	var lines []string
	for i := 0; i < s.Height/5; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, center(r.styles.Clock.Render(s.Clock), s.Width), "")

	layout := Layout{
		Left:     left,
		Right:    left + boxWidth,
		Top:      len(lines),
		InputRow: len(lines) + 1,
		FirstRow: -1,
	}

	label := r.styles.Engine.Render(s.Engine.Name + " ▾")
	layout.EngineLeft = left + 2
	layout.EngineRight = layout.EngineLeft + lipgloss.Width(label)

	box := r.styles.Box
	if s.Focused {
		box = r.styles.BoxFocused
	}
	inputLine := ansi.Truncate(label+r.styles.Separator.Render(" │ ")+s.Input, inner, "")
	lines = append(lines, indent(box.Width(boxWidth-2).Render(inputLine), left)...)

	if rows, header := r.dropdown(s, inner); len(rows) > 0 {
		content := rows
		layout.FirstRow = len(lines) + 1
		if header != "" {
			content = append([]string{header}, rows...)
			layout.FirstRow++
		}
		layout.Rows = len(rows)
		lines = append(lines, indent(r.styles.Dropdown.Width(boxWidth-2).Render(strings.Join(content, "\n")), left)...)
	}
	layout.Bottom = len(lines)

	if s.Status != "" {
		style := r.styles.StatusNotice
		if s.StatusError {
			style = r.styles.StatusError
		}
		lines = append(lines, "", center(style.Render(ansi.Truncate(s.Status, s.Width, "…")), s.Width))
	}

	if s.Keys != nil {
		helpLine := center(r.styles.Help.Render(s.HelpModel.View(s.Keys)), s.Width)
		for len(lines) < s.Height-1 {
			lines = append(lines, "")
		}
		lines = append(lines, helpLine)
	}

	return strings.Join(lines, "\n"), layout
}

// dropdown renders the rows of the open list and its optional header
func (r *Renderer) dropdown(s ViewState, inner int) ([]string, string) {
	var (
		rows   []string
		header string
	)

	switch s.Dropdown {
	case DropdownSuggestions:
		for i, item := range s.Rows {
			rows = append(rows, r.row(r.styles.SuggestIcon.Render("⌕ "), item, i == s.Highlight, inner))
		}

	case DropdownHistory:
		title := r.styles.Header.Render("Search History")
		if s.HistoryTotal > len(s.Rows) {
			title = r.styles.Header.Render(fmt.Sprintf("Search History (%d of %d)", len(s.Rows), s.HistoryTotal))
		}
		hint := r.styles.Dim.Render("ctrl+d delete • ctrl+x clear")
		gap := inner - lipgloss.Width(title) - lipgloss.Width(hint)
		if gap >= 1 {
			header = title + strings.Repeat(" ", gap) + hint
		} else {
			header = title
		}
		for i, item := range s.Rows {
			rows = append(rows, r.row(r.styles.HistoryIcon.Render("↺ "), item, i == s.Highlight, inner))
		}

	case DropdownEngines:
		header = r.styles.Header.Render("Search engine")
		for i, e := range s.Engines {
			mark := "  "
			if e.ID == s.Engine.ID {
				mark = r.styles.Selected.Render("● ")
			}
			rows = append(rows, r.row(mark, fmt.Sprintf("%d  %s", i+1, e.Name), i == s.Highlight, inner))
		}
	}

	return rows, header
}

func (r *Renderer) row(icon, text string, highlighted bool, inner int) string {
	text = ansi.Truncate(text, max(inner-lipgloss.Width(icon), 1), "…")
	if highlighted {
		return r.styles.HighlightBg.Width(inner).Render(ansi.Strip(icon) + text)
	}
	return icon + r.styles.Row.Render(text)
}

func indent(block string, left int) []string {
	pad := strings.Repeat(" ", left)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return lines
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
