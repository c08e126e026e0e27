package domain

// Engine describes one external search provider
type Engine struct {
	ID   string
	Name string
	URL  string // query URL prefix; the encoded query is appended
	Icon string // favicon URL
}
