package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryCommitted      EventType = "QueryCommitted"
	EventSuggestionsFetched  EventType = "SuggestionsFetched"
	EventSearchStarted       EventType = "SearchStarted"
	EventProbeCompleted      EventType = "ProbeCompleted"
	EventSearchSettled       EventType = "SearchSettled"
	EventSearchFailed        EventType = "SearchFailed"
	EventError               EventType = "Error"
	EventSessionSaved        EventType = "SessionSaved"
	EventHealthChecked       EventType = "HealthChecked"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryCommittedEvent is emitted when a query is submitted or a
// suggestion is picked, before the pipeline starts
type QueryCommittedEvent struct {
	Query  string
	Source string // "submit", "suggestion", "history", "session"
}

func (e QueryCommittedEvent) Type() EventType { return EventQueryCommitted }

// SuggestionsFetchedEvent is emitted when a suggestion fetch settles
type SuggestionsFetchedEvent struct {
	Query       string
	Suggestions []string
}

func (e SuggestionsFetchedEvent) Type() EventType { return EventSuggestionsFetched }

// SearchStartedEvent is emitted when a submission pipeline begins
type SearchStartedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// ProbeCompletedEvent is emitted when the count probe settles,
// whether it succeeded or was absorbed
type ProbeCompletedEvent struct {
	Query         string
	ExpectedCount int
	Absorbed      bool // true when the probe failed and the default was used
}

func (e ProbeCompletedEvent) Type() EventType { return EventProbeCompleted }

// SearchSettledEvent is emitted when a pipeline settles with results
type SearchSettledEvent struct {
	Query        string
	TotalResults int
	ElapsedMs    float64
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// SearchFailedEvent is emitted when a pipeline ends in an error state
type SearchFailedEvent struct {
	Query   string
	Message string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// SessionSavedEvent is emitted after the committed query is mirrored
// into the shareable session state
type SessionSavedEvent struct {
	Query string
}

func (e SessionSavedEvent) Type() EventType { return EventSessionSaved }

// HealthCheckedEvent is emitted after the startup health probe
type HealthCheckedEvent struct {
	Healthy bool
	Detail  string
}

func (e HealthCheckedEvent) Type() EventType { return EventHealthChecked }
