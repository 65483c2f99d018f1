package views

import (
	"fmt"
	"strings"

	"github.com/utcofficial/sophon-search/internal/domain"
	"github.com/utcofficial/sophon-search/internal/ui/logic"
)

// ResultRenderer renders the result area from the view-model. Rendering
// is a pure function of the lifecycle phase and the view-model; no
// state transition ever originates here.
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// Render renders the body for the current phase
func (rr *ResultRenderer) Render(state ViewState) string {
	switch state.VM.Phase {
	case domain.PhaseProbing, domain.PhaseAwaiting:
		return rr.renderPlaceholders(state)
	case domain.PhaseSettled:
		return rr.renderSettled(state)
	case domain.PhaseErrored:
		return rr.styles.Error.Render(state.VM.ErrMessage) + "\n"
	default:
		return rr.styles.Dim.Render("Type to search. Enter submits, Esc closes suggestions.") + "\n"
	}
}

// renderPlaceholders renders the loading skeleton: one placeholder card
// per expected result, sized by the probe (or the default of 3)
func (rr *ResultRenderer) renderPlaceholders(state ViewState) string {
	count := state.ExpectedCount
	if count < 1 {
		count = 1
	}
	if count > 5 {
		count = 5
	}

	var b strings.Builder
	b.WriteString(rr.styles.Stats.Render(state.SpinnerView + " Searching..."))
	b.WriteString("\n")

	bar := strings.Repeat("▁", 40)
	short := strings.Repeat("▁", 26)
	for i := 0; i < count; i++ {
		card := rr.styles.Placeholder.Render(bar) + "\n" + rr.styles.Placeholder.Render(short)
		b.WriteString(rr.styles.Card.Render(card))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSettled renders the stats line and the aggregated sections in
// fixed order: answer box, web snippets, primary result cards
func (rr *ResultRenderer) renderSettled(state ViewState) string {
	vm := state.VM
	if vm.TotalResults == 0 && vm.Answer == nil && len(vm.Snippets) == 0 {
		return rr.styles.Empty.Render(fmt.Sprintf("No results found for %q.", vm.Query)) + "\n"
	}

	var b strings.Builder
	b.WriteString(rr.styles.Stats.Render(logic.FormatStats(vm.TotalResults, vm.ElapsedMs)))
	b.WriteString("\n")

	if vm.Answer != nil {
		b.WriteString(rr.renderAnswer(vm.Answer))
	}

	if len(vm.Snippets) > 0 {
		b.WriteString(rr.styles.SectionLabel.Render("Web results"))
		b.WriteString("\n")
		for _, s := range vm.Snippets {
			b.WriteString(rr.renderSnippet(s))
		}
	}

	if len(vm.Results) > 0 {
		if state.DualMode {
			b.WriteString(rr.styles.SectionLabel.Render("Documents"))
			b.WriteString("\n")
		}
		for i, res := range vm.Results {
			b.WriteString(rr.renderCard(res, i == state.ResultCursor))
		}
	}

	return b.String()
}

func (rr *ResultRenderer) renderAnswer(a *domain.SupplementaryAnswer) string {
	var b strings.Builder
	b.WriteString(rr.styles.AnswerTitle.Render(a.Title))
	b.WriteString("\n")
	b.WriteString(a.Extract)
	if a.URL != "" {
		b.WriteString("\n")
		b.WriteString(rr.styles.SnippetURL.Render(a.URL))
	}
	return rr.styles.AnswerBox.Render(b.String()) + "\n"
}

func (rr *ResultRenderer) renderSnippet(s domain.WebSnippet) string {
	var b strings.Builder
	b.WriteString(rr.styles.SnippetTitle.Render(s.Title))
	b.WriteString("\n")
	if s.URL != "" {
		b.WriteString(rr.styles.SnippetURL.Render(s.URL))
		b.WriteString("\n")
	}
	b.WriteString(s.Snippet)
	return rr.styles.Card.Render(b.String()) + "\n"
}

// renderCard renders one primary result card
func (rr *ResultRenderer) renderCard(res domain.SearchResult, selected bool) string {
	title := res.Title
	if title == "" {
		title = "Untitled"
	}

	snippet := logic.EmphasizeTerms(res.Snippet, res.MatchedTerms, func(s string) string {
		return rr.styles.Emphasis.Render(s)
	})

	meta := fmt.Sprintf("%s · score %s", logic.FormatSize(res.SizeBytes), logic.FormatScore(res.Score))
	if len(res.MatchedTerms) > 0 {
		meta += " · matched: " + strings.Join(res.MatchedTerms, ", ")
	}

	var b strings.Builder
	b.WriteString(rr.styles.CardTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(rr.styles.CardID.Render(res.ID))
	b.WriteString("\n")
	b.WriteString(snippet)
	b.WriteString("\n")
	b.WriteString(rr.styles.CardMeta.Render(meta))

	style := rr.styles.Card
	if selected {
		style = rr.styles.CardSelected
	}
	return style.Render(b.String()) + "\n"
}
