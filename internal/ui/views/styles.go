package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Clock        lipgloss.Style
	Box          lipgloss.Style
	BoxFocused   lipgloss.Style
	Engine       lipgloss.Style
	Separator    lipgloss.Style
	Placeholder  lipgloss.Style
	Dropdown     lipgloss.Style
	Header       lipgloss.Style
	Row          lipgloss.Style
	HighlightBg  lipgloss.Style
	HistoryIcon  lipgloss.Style
	SuggestIcon  lipgloss.Style
	Selected     lipgloss.Style
	Dim          lipgloss.Style
	Help         lipgloss.Style
	StatusError  lipgloss.Style
	StatusNotice lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return &Styles{
		Clock:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Box:         box,
		BoxFocused:  box.BorderForeground(lipgloss.Color("39")),
		Engine:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Row:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HighlightBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("231")),
		HistoryIcon:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SuggestIcon:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Dim:          lipgloss.NewStyle().Faint(true),
		Help:         lipgloss.NewStyle().Faint(true),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}
