package ui

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/config"
	"github.com/utcofficial/sophon-search/internal/domain"
	"github.com/utcofficial/sophon-search/internal/eventbus"
)

// recordingBus captures published events synchronously for assertions
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) byType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestModel(bus eventbus.EventBus) *Model {
	cfg := config.DefaultConfig()
	api := client.New(client.Options{BaseURL: "http://127.0.0.1:0", RequestTimeout: time.Second})
	return NewModel(cfg, bus, api, nil, nil, "")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReplayTriggersExactlyOneSearch(t *testing.T) {
	t.Parallel()
	bus := &recordingBus{}
	m := newTestModel(bus)

	_, cmd := m.Update(replayMsg{query: "cat"})
	require.NotNil(t, cmd, "the replay must kick the pipeline")

	commits := bus.byType(eventbus.EventQueryCommitted)
	require.Len(t, commits, 1)
	commit := commits[0].(eventbus.QueryCommittedEvent)
	require.Equal(t, "cat", commit.Query)
	require.Equal(t, "session", commit.Source)

	require.Contains(t, m.View(), "Searching...", "pipeline is in flight after replay")
}

func TestBlankSubmitIssuesNothing(t *testing.T) {
	t.Parallel()
	bus := &recordingBus{}
	m := newTestModel(bus)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Empty(t, bus.byType(eventbus.EventQueryCommitted))
	require.Equal(t, domain.PhaseIdle, m.orch.Phase(), "lifecycle phase is unchanged")
}

func TestTypingSchedulesDebounce(t *testing.T) {
	t.Parallel()
	m := newTestModel(&recordingBus{})

	_, cmd := m.Update(keyRunes("c"))
	// Below the minimum query length nothing is scheduled beyond the
	// input's own cursor command
	require.Equal(t, "c", m.input.Value())

	_, cmd = m.Update(keyRunes("a"))
	require.NotNil(t, cmd)
	require.Equal(t, "ca", m.ctl.Query())
}

func TestSuggestionFailureIsAbsorbed(t *testing.T) {
	t.Parallel()
	m := newTestModel(&recordingBus{})

	_, _ = m.Update(suggestionsMsg{gen: 0, err: errors.New("boom")})
	require.False(t, m.ctl.PanelOpen())
	require.Empty(t, m.ctl.Suggestions())
}

func TestSubmitStartsPipelineAndClosesPanel(t *testing.T) {
	t.Parallel()
	bus := &recordingBus{}
	m := newTestModel(bus)

	m.Update(keyRunes("c"))
	m.Update(keyRunes("a"))
	m.Update(keyRunes("t"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.False(t, m.ctl.PanelOpen())

	commits := bus.byType(eventbus.EventQueryCommitted)
	require.Len(t, commits, 1)
	require.Equal(t, "cat", commits[0].(eventbus.QueryCommittedEvent).Query)
	require.True(t, m.orch.Phase().InFlight())
}

func TestEscapeClosesPanelWithoutClearingInput(t *testing.T) {
	t.Parallel()
	m := newTestModel(&recordingBus{})

	m.Update(keyRunes("c"))
	m.Update(keyRunes("a"))
	m.ctl.OnSuggestions(0, []string{"cat"}) // no fetch issued yet, gen 0 applies
	require.True(t, m.ctl.PanelOpen())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.ctl.PanelOpen())
	require.Equal(t, "ca", m.input.Value())
}
