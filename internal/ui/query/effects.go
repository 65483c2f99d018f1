package query

import "time"

// Effect is a side effect requested by the controller. The caller maps
// effects onto commands; the controller itself never touches timers or
// the network.
type Effect interface {
	isEffect()
}

// ScheduleDebounce asks for a settle timer carrying the given generation
type ScheduleDebounce struct {
	Gen   uint64
	After time.Duration
}

func (ScheduleDebounce) isEffect() {}

// FetchSuggestions asks for a suggestion fetch tagged with a generation
type FetchSuggestions struct {
	Gen   uint64
	Query string
}

func (FetchSuggestions) isEffect() {}

// StartSearch hands a committed query to the search orchestrator
type StartSearch struct {
	Query  string
	Source string
}

func (StartSearch) isEffect() {}

// FocusInput asks for input focus to return to the field
type FocusInput struct{}

func (FocusInput) isEffect() {}
