package ui

import (
	"io"

	"github.com/pkg/browser"
)

// Opener opens a search URL in a new browsing context
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener opens URLs in the system browser
type BrowserOpener struct{}

// NewBrowserOpener silences the launched browser's output, which would
// otherwise draw over the TUI
func NewBrowserOpener() BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserOpener{}
}

func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}
