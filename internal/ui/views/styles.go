package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Prompt         lipgloss.Style
	InputBox       lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Stats          lipgloss.Style
	Suggestion     lipgloss.Style
	SuggestionSel  lipgloss.Style
	PanelLabel     lipgloss.Style
	SectionLabel   lipgloss.Style
	CardTitle      lipgloss.Style
	CardID         lipgloss.Style
	CardMeta       lipgloss.Style
	Card           lipgloss.Style
	CardSelected   lipgloss.Style
	Placeholder    lipgloss.Style
	Emphasis       lipgloss.Style
	AnswerBox      lipgloss.Style
	AnswerTitle    lipgloss.Style
	SnippetTitle   lipgloss.Style
	SnippetURL     lipgloss.Style
	Empty          lipgloss.Style
	Error          lipgloss.Style
	Help           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Stats:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginBottom(1),
		Suggestion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2),
		SuggestionSel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("238")).
			PaddingLeft(2),
		PanelLabel:   lipgloss.NewStyle().Faint(true).PaddingLeft(2),
		SectionLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		CardTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		CardID:       lipgloss.NewStyle().Faint(true),
		CardMeta:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1).
			MarginBottom(1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("99")).
			PaddingLeft(1).
			MarginBottom(1),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Emphasis:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		AnswerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginBottom(1).
			BorderForeground(lipgloss.Color("72")),
		AnswerTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("72")),
		SnippetTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		SnippetURL:   lipgloss.NewStyle().Faint(true).Italic(true),
		Empty:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:         lipgloss.NewStyle().Faint(true),
	}
}
