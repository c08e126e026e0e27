package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"startpage/internal/domain"
)

// HelpRenderer handles pager content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dim:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

func (r *HelpRenderer) line(b *strings.Builder, k, d string) {
	fmt.Fprintf(b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", k)), r.desc.Render(d))
}

// RenderHelpContent generates the key reference shown in the pager
func (r *HelpRenderer) RenderHelpContent(all []domain.Engine, historyCap int) string {
	var help strings.Builder

	help.WriteString(r.title.Render("Start Page Help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Page"))
	help.WriteString("\n")
	r.line(&help, "/", "Focus the search box")
	r.line(&help, "click", "Focus the search box, pick a row or the engine")
	r.line(&help, "?, F1", "Show this help")
	r.line(&help, "ctrl+o", "Browse the full search history")
	r.line(&help, "q", "Quit (when the search box is not focused)")
	r.line(&help, "ctrl+c", "Quit")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Search Box"))
	help.WriteString("\n")
	r.line(&help, "enter", "Search for the highlighted row, or the typed text")
	r.line(&help, "↑/↓", "Move through suggestions or history")
	r.line(&help, "esc", "Close the dropdown, then leave the search box")
	r.line(&help, "ctrl+d", "Delete the highlighted history entry")
	r.line(&help, "ctrl+x", "Clear all history")
	r.line(&help, "ctrl+e", "Choose a search engine")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Search Engines"))
	help.WriteString("\n")
	for i, e := range all {
		r.line(&help, fmt.Sprintf("%d", i+1), fmt.Sprintf("%-12s %s", e.Name, e.URL))
	}
	help.WriteString("\n")

	help.WriteString(r.dim.Render(fmt.Sprintf("  History keeps the %d most recent searches.", historyCap)))

	return help.String()
}

// RenderHistoryContent lists every history entry, most recent first
func (r *HelpRenderer) RenderHistoryContent(entries []string) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("Search History (%d)", len(entries))))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(r.dim.Render("  No searches yet."))
		return b.String()
	}
	width := len(fmt.Sprintf("%d", len(entries)))
	for i, e := range entries {
		fmt.Fprintf(&b, "  %s  %s\n", r.dim.Render(fmt.Sprintf("%*d", width, i+1)), r.desc.Render(e))
	}
	return b.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show runs ov over content until the user quits it
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
