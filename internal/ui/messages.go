package ui

import (
	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/domain"
)

// debounceMsg fires when the suggestion settle timer elapses
type debounceMsg struct {
	gen uint64
}

// suggestionsMsg contains the result of a suggestion fetch
type suggestionsMsg struct {
	gen   uint64
	items []string
	err   error
}

// probeMsg contains the result of the count probe
type probeMsg struct {
	gen   uint64
	total int
	err   error
}

// delayMsg fires when the artificial loading delay elapses
type delayMsg struct {
	gen uint64
}

// searchMsg contains the result of the full primary search
type searchMsg struct {
	gen  uint64
	resp *client.SearchResponse
	err  error
}

// webMsg contains the result of the supplementary source fetch
type webMsg struct {
	gen  uint64
	resp *client.WebResponse
	err  error
}

// recentMsg contains recent queries loaded from history
type recentMsg struct {
	entries []domain.HistoryEntry
	err     error
}

// sessionSavedMsg reports the session state write
type sessionSavedMsg struct {
	query string
	err   error
}

// healthMsg contains the startup health probe result
type healthMsg struct {
	detail string
	err    error
}

// docPagerMsg contains the result of the document pager command
type docPagerMsg struct {
	err error
}

// clearStatusMsg clears the transient status line
type clearStatusMsg struct{}

// replayMsg triggers the single session/flag replay search at startup
type replayMsg struct {
	query string
}
