// Package query owns the live query text and everything around it: the
// debounced suggestion fetch, the keyboard-navigable suggestion panel,
// and the post-submission suppression state. The controller is a pure
// state machine; it returns effects for the caller to execute so every
// transition stays unit-testable without a running program.
package query

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinQueryLen is the minimum query length, in characters, before
// suggestions are fetched
const MinQueryLen = 2

// SuppressionState controls whether the next scheduled suggestion fetch
// is skipped. It is an explicit state, not a side-channel flag: a
// submission moves the controller to SuppressAfterSearch and the next
// debounce settle (or a clear) moves it back.
type SuppressionState int

const (
	// SuppressNormal lets debounced fetches through
	SuppressNormal SuppressionState = iota
	// SuppressAfterSearch skips the single next scheduled fetch, so the
	// panel does not reopen right after a submission
	SuppressAfterSearch
)

// PanelSource identifies what the suggestion panel is showing
type PanelSource int

const (
	// SourceServer means the panel holds autocomplete suggestions
	SourceServer PanelSource = iota
	// SourceRecent means the panel holds recent queries from history
	SourceRecent
)

// Controller implements the query-input state machine
type Controller struct {
	query       string
	suggestions []string
	activeIndex int
	panelOpen   bool
	source      PanelSource
	suppression SuppressionState

	// debounceGen identifies the most recently scheduled settle timer;
	// fetchGen identifies the most recently issued suggestion fetch.
	// Completions carrying an older generation are discarded.
	debounceGen uint64
	fetchGen    uint64

	debounce time.Duration
}

// New creates a controller with the given settle interval
func New(debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}
	return &Controller{
		activeIndex: -1,
		debounce:    debounce,
	}
}

// Query returns the current query text
func (c *Controller) Query() string { return c.query }

// Suggestions returns the current suggestion list
func (c *Controller) Suggestions() []string { return c.suggestions }

// ActiveIndex returns the keyboard-selected suggestion index, -1 when
// nothing is selected
func (c *Controller) ActiveIndex() int { return c.activeIndex }

// PanelOpen reports whether the suggestion panel is showing
func (c *Controller) PanelOpen() bool { return c.panelOpen }

// PanelSource reports what kind of items the panel holds
func (c *Controller) PanelSource() PanelSource { return c.source }

// Suppression returns the current suppression state
func (c *Controller) Suppression() SuppressionState { return c.suppression }

// OnQueryChange handles an edit to the query text. At most one
// suggestion fetch is scheduled per idle period: a pending settle timer
// is superseded by bumping the debounce generation.
func (c *Controller) OnQueryChange(text string) []Effect {
	c.query = text

	// Supersede any pending settle timer
	c.debounceGen++

	if utf8.RuneCountInString(text) < MinQueryLen {
		c.suggestions = nil
		c.activeIndex = -1
		c.panelOpen = false
		return nil
	}

	return []Effect{ScheduleDebounce{Gen: c.debounceGen, After: c.debounce}}
}

// OnDebounceElapsed handles a settle timer firing. A stale generation is
// inert. A suppressed settle skips the fetch and clears the suppression.
func (c *Controller) OnDebounceElapsed(gen uint64) []Effect {
	if gen != c.debounceGen {
		return nil
	}
	if c.suppression == SuppressAfterSearch {
		c.suppression = SuppressNormal
		return nil
	}
	if utf8.RuneCountInString(c.query) < MinQueryLen {
		return nil
	}

	c.fetchGen++
	return []Effect{FetchSuggestions{Gen: c.fetchGen, Query: c.query}}
}

// OnSuggestions applies a fetched suggestion list. The list is replaced
// wholesale and the active index is invalidated. A response tagged with
// an older generation than the latest issued fetch is discarded so a
// slow fetch can never overwrite a newer list.
func (c *Controller) OnSuggestions(gen uint64, items []string) {
	if gen != c.fetchGen {
		return
	}
	c.suggestions = items
	c.activeIndex = -1
	c.source = SourceServer
	c.panelOpen = len(items) > 0
}

// ShowRecent fills the panel with recent queries from history. Used
// when the input is focused while empty; navigation and picking behave
// exactly like server suggestions.
func (c *Controller) ShowRecent(queries []string) {
	if len(queries) == 0 {
		return
	}
	c.suggestions = queries
	c.activeIndex = -1
	c.source = SourceRecent
	c.panelOpen = true
}

// OnSubmit handles a submission of the current query. A blank query is
// a local no-op. Returns the effects and whether a search started.
func (c *Controller) OnSubmit() ([]Effect, bool) {
	trimmed := strings.TrimSpace(c.query)
	if trimmed == "" {
		return nil, false
	}

	c.query = trimmed
	c.closeForSearch()
	return []Effect{StartSearch{Query: trimmed, Source: "submit"}}, true
}

// OnSuggestionPick handles picking a suggestion. Downstream it is
// identical to OnSubmit, but the query becomes the picked suggestion.
func (c *Controller) OnSuggestionPick(index int) []Effect {
	if index < 0 || index >= len(c.suggestions) {
		return nil
	}

	picked := c.suggestions[index]
	source := "suggestion"
	if c.source == SourceRecent {
		source = "history"
	}

	c.query = picked
	c.closeForSearch()
	return []Effect{StartSearch{Query: picked, Source: source}}
}

// OnArrowDown moves the selection down, clamped to the last item
func (c *Controller) OnArrowDown() {
	if !c.panelOpen {
		return
	}
	if c.activeIndex < len(c.suggestions)-1 {
		c.activeIndex++
	}
}

// OnArrowUp moves the selection up; -1 means back to no selection
func (c *Controller) OnArrowUp() {
	if !c.panelOpen {
		return
	}
	if c.activeIndex > -1 {
		c.activeIndex--
	}
}

// OnEnter handles Enter while the panel may be open. When a suggestion
// is selected it is picked; otherwise the key is not consumed and falls
// through to normal submission.
func (c *Controller) OnEnter() ([]Effect, bool) {
	if c.panelOpen && c.activeIndex >= 0 {
		return c.OnSuggestionPick(c.activeIndex), true
	}
	return nil, false
}

// OnEscape hides the panel without touching the query or the list
func (c *Controller) OnEscape() {
	c.panelOpen = false
}

// OnFocus reopens the panel when there is a viable query and no pending
// suppression
func (c *Controller) OnFocus() {
	if c.suppression == SuppressAfterSearch {
		return
	}
	if utf8.RuneCountInString(c.query) >= MinQueryLen && len(c.suggestions) > 0 {
		c.panelOpen = true
	}
}

// OnOutsideClick closes the panel on pointer interaction outside the
// control's bounding region
func (c *Controller) OnOutsideClick() {
	c.panelOpen = false
}

// OnClear resets the whole control and asks for input focus back
func (c *Controller) OnClear() []Effect {
	c.query = ""
	c.suggestions = nil
	c.activeIndex = -1
	c.panelOpen = false
	c.suppression = SuppressNormal
	c.debounceGen++
	return []Effect{FocusInput{}}
}

// SetQuery replaces the query text without scheduling a fetch. Used for
// session replay at startup.
func (c *Controller) SetQuery(text string) {
	c.query = text
	c.debounceGen++
}

func (c *Controller) closeForSearch() {
	c.suggestions = nil
	c.activeIndex = -1
	c.panelOpen = false
	c.suppression = SuppressAfterSearch
	// A pick rewrites the input, which arrives as a query change; the
	// suppression above makes that one settle inert.
	c.debounceGen++
}
