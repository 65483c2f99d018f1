package views

import (
	"strings"

	"github.com/utcofficial/sophon-search/internal/ui/query"
)

// SuggestionRenderer renders the suggestion panel
type SuggestionRenderer struct {
	styles *Styles
}

// NewSuggestionRenderer creates a new suggestion renderer
func NewSuggestionRenderer(styles *Styles) *SuggestionRenderer {
	return &SuggestionRenderer{styles: styles}
}

// Render renders the open panel: an optional label line for recent
// queries, then one line per item with the active one highlighted
func (sr *SuggestionRenderer) Render(state ViewState) string {
	var b strings.Builder

	if state.PanelSource == query.SourceRecent {
		b.WriteString(sr.styles.PanelLabel.Render("recent"))
		b.WriteString("\n")
	}

	for i, s := range state.Suggestions {
		style := sr.styles.Suggestion
		if i == state.ActiveIndex {
			style = sr.styles.SuggestionSel
		}
		b.WriteString(style.Render(s))
		b.WriteString("\n")
	}

	return b.String()
}

// Height returns the rendered line count of the open panel
func (sr *SuggestionRenderer) Height(state ViewState) int {
	h := len(state.Suggestions)
	if state.PanelSource == query.SourceRecent {
		h++
	}
	return h
}
