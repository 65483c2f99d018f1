package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"github.com/utcofficial/sophon-search/internal/domain"
	"github.com/utcofficial/sophon-search/internal/ui/query"
)

// Layout constants used for pointer-region hit testing
const (
	// HeaderLines is the rendered height of the title block
	HeaderLines = 2
	// InputLines is the rendered height of the bordered input box
	InputLines = 3
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	InputView     string
	Suggestions   []string
	ActiveIndex   int
	PanelOpen     bool
	PanelSource   query.PanelSource
	VM            domain.SearchViewModel
	ExpectedCount int
	DualMode      bool
	ResultCursor  int
	SpinnerView   string
	StatusMessage string
	HelpModel     help.Model
	HelpKeys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	results    *ResultRenderer
	suggestRnd *SuggestionRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		results:    NewResultRenderer(styles),
		suggestRnd: NewSuggestionRenderer(styles),
	}
}

// Styles exposes the style set for callers that emphasize inline text
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render("sophon"))
	content.WriteString("\n")

	inputBox := r.styles.InputBox.Width(inputWidth(state.Width)).Render(state.InputView)
	content.WriteString(inputBox)
	content.WriteString("\n")

	if state.PanelOpen {
		content.WriteString(r.suggestRnd.Render(state))
	}

	content.WriteString(r.results.Render(state))

	if state.StatusMessage != "" {
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	if state.HelpKeys != nil {
		content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.HelpKeys)))
	}

	return content.String()
}

// ControlRegion returns the half-open line range [top, bottom) occupied
// by the input box and the open suggestion panel. A pointer press
// outside this region dismisses the panel.
func (r *Renderer) ControlRegion(state ViewState) (int, int) {
	top := HeaderLines
	bottom := top + InputLines
	if state.PanelOpen {
		bottom += r.suggestRnd.Height(state)
	}
	return top, bottom
}

func inputWidth(total int) int {
	w := total - 4
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	return w
}
