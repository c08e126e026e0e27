package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted     EventType = "SearchSubmitted"
	EventEngineSelected      EventType = "EngineSelected"
	EventHistoryEntryRemoved EventType = "HistoryEntryRemoved"
	EventHistoryCleared      EventType = "HistoryCleared"
	EventSuggestionsFailed   EventType = "SuggestionsFailed"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted after a query has been dispatched to an engine
type SearchSubmittedEvent struct {
	Query    string
	EngineID string
	URL      string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// EngineSelectedEvent is emitted when the user picks another engine
type EngineSelectedEvent struct {
	EngineID string
}

func (e EngineSelectedEvent) Type() EventType { return EventEngineSelected }

// HistoryEntryRemovedEvent is emitted when a single history entry is deleted
type HistoryEntryRemovedEvent struct {
	Query string
}

func (e HistoryEntryRemovedEvent) Type() EventType { return EventHistoryEntryRemoved }

// HistoryClearedEvent is emitted when the whole history is cleared
type HistoryClearedEvent struct{}

func (e HistoryClearedEvent) Type() EventType { return EventHistoryCleared }

// SuggestionsFailedEvent is emitted when a suggestion fetch fails.
// The failure is never shown to the user.
type SuggestionsFailedEvent struct {
	Query string
	Err   error
}

func (e SuggestionsFailedEvent) Type() EventType { return EventSuggestionsFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
