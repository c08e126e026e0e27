package ui

import (
	"time"
)

// clockMsg is sent every second to refresh the clock line
type clockMsg time.Time

// openedMsg reports the outcome of opening a search URL
type openedMsg struct {
	url string
	err error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
