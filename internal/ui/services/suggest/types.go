package suggest

// DebounceElapsedMsg fires when the input has been idle for the debounce
// delay after the change that issued Generation
type DebounceElapsedMsg struct {
	Generation uint64
	Query      string
}

// ResultMsg carries the outcome of a suggestion fetch
type ResultMsg struct {
	Generation uint64
	Query      string
	Items      []string
	Err        error
}
