//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// WorkspaceOption configures the config file written by WriteConfig
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	endpoint string
	engine   string
	debounce string
}

// WithSuggestionEndpoint points the app at a suggestion proxy
func WithSuggestionEndpoint(url string) WorkspaceOption {
	return func(opts *workspaceOptions) {
		opts.endpoint = url
	}
}

// WithDefaultEngine sets the engine used before any choice is stored
func WithDefaultEngine(id string) WorkspaceOption {
	return func(opts *workspaceOptions) {
		opts.engine = id
	}
}

// CreateTestWorkspace creates a temporary directory that acts as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes config.toml into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(options ...WorkspaceOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	opts := workspaceOptions{engine: "google", debounce: "20ms"}
	for _, o := range options {
		o(&opts)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "version = 1\n")
	fmt.Fprintf(&b, "default_engine = %q\n", opts.engine)
	fmt.Fprintf(&b, "data_dir = %q\n", filepath.Join(tf.workspace, "data"))
	fmt.Fprintf(&b, "\n[suggest]\n")
	fmt.Fprintf(&b, "endpoint = %q\n", opts.endpoint)
	fmt.Fprintf(&b, "debounce = %q\n", opts.debounce)
	fmt.Fprintf(&b, "\n[log]\n")
	fmt.Fprintf(&b, "level = \"debug\"\n")
	fmt.Fprintf(&b, "file = %q\n", filepath.Join(tf.workspace, "startpage.log"))

	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// InstallFakeBrowser puts an xdg-open on $PATH that records the URLs it is
// asked to open.
func (tf *TUITestFramework) InstallFakeBrowser() error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	binDir := filepath.Join(tf.workspace, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	script := fmt.Sprintf("#!/bin/sh\necho \"$1\" >> %q\n", tf.openedPath())
	if err := os.WriteFile(filepath.Join(binDir, "xdg-open"), []byte(script), 0755); err != nil {
		return err
	}
	tf.SetEnv("PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH"))
	return nil
}

// OpenedURLs returns what the fake browser was asked to open
func (tf *TUITestFramework) OpenedURLs() []string {
	data, err := os.ReadFile(tf.openedPath())
	if err != nil {
		return nil
	}
	return strings.Fields(string(data))
}

func (tf *TUITestFramework) openedPath() string {
	return filepath.Join(tf.workspace, "opened.txt")
}

// SuggestionStub is a fake suggestion proxy
type SuggestionStub struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

// NewSuggestionStub answers every query q with q plus a few completions
func NewSuggestionStub() *SuggestionStub {
	stub := &SuggestionStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		stub.mu.Lock()
		stub.queries = append(stub.queries, q)
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]string{q + " tutorial", q + " playground", q + " release notes"})
	}))
	return stub
}

// Queries returns the queries received so far
func (s *SuggestionStub) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}
