package ui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/config"
	"github.com/utcofficial/sophon-search/internal/domain"
	"github.com/utcofficial/sophon-search/internal/eventbus"
	"github.com/utcofficial/sophon-search/internal/history"
	"github.com/utcofficial/sophon-search/internal/ui/orchestrator"
	"github.com/utcofficial/sophon-search/internal/ui/query"
	"github.com/utcofficial/sophon-search/internal/ui/views"
)

// recentLimit caps how many history entries the empty-input panel shows
const recentLimit = 6

// Model represents the UI state
type Model struct {
	cfg      *config.Config
	bus      eventbus.EventBus
	api      *client.Client
	hist     *history.Store
	sessions config.SessionStore

	ctl      *query.Controller
	orch     *orchestrator.Orchestrator
	renderer *views.Renderer

	input textinput.Model
	spin  spinner.Model
	help  help.Model
	keys  keyMap

	width        int
	height       int
	resultCursor int
	statusMsg    string
	initialQuery string
	announcedGen uint64 // last generation whose outcome was published

	// Program reference for terminal management around the pager
	program *tea.Program
}

// NewModel creates a new UI model. initialQuery, when non-empty, replays
// exactly one search at startup (session state or -q flag).
func NewModel(cfg *config.Config, bus eventbus.EventBus, api *client.Client, hist *history.Store, sessions config.SessionStore, initialQuery string) *Model {
	ti := textinput.New()
	ti.Placeholder = "search documents..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		cfg:          cfg,
		bus:          bus,
		api:          api,
		hist:         hist,
		sessions:     sessions,
		ctl:          query.New(cfg.Debounce()),
		orch: orchestrator.New(orchestrator.Options{
			Strategy: cfg.Strategy,
			PerPage:  cfg.PerPage,
			MinDelay: time.Duration(cfg.MinDelayMs) * time.Millisecond,
			MaxDelay: time.Duration(cfg.MaxDelayMs) * time.Millisecond,
		}),
		renderer:     views.NewRenderer(),
		input:        ti,
		spin:         sp,
		help:         help.New(),
		keys:         newKeyMap(),
		initialQuery: initialQuery,
	}
}

// SetProgram stores the program reference for pager terminal handoff
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.healthCmd()}
	if m.initialQuery != "" {
		q := m.initialQuery
		cmds = append(cmds, func() tea.Msg { return replayMsg{query: q} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		// Only keep the spinner ticking while a pipeline is in flight
		if !m.orch.Phase().InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case debounceMsg:
		return m, m.runQueryEffects(m.ctl.OnDebounceElapsed(msg.gen))

	case suggestionsMsg:
		items := msg.items
		if msg.err != nil {
			// Suggestion failures degrade silently to an empty list
			log.Printf("UI: suggestion fetch absorbed: %v", msg.err)
			items = nil
		}
		m.ctl.OnSuggestions(msg.gen, items)
		m.bus.Publish(eventbus.SuggestionsFetchedEvent{Query: m.ctl.Query(), Suggestions: items})
		return m, nil

	case probeMsg:
		cmd := m.runOrchEffects(m.orch.OnProbe(msg.gen, msg.total, msg.err))
		if msg.gen == m.orch.Generation() {
			m.bus.Publish(eventbus.ProbeCompletedEvent{
				Query:         m.orch.Query(),
				ExpectedCount: m.orch.ExpectedCount(),
				Absorbed:      msg.err != nil,
			})
		}
		return m, cmd

	case delayMsg:
		return m, m.runOrchEffects(m.orch.OnDelayElapsed(msg.gen))

	case searchMsg:
		cmd := m.runOrchEffects(m.orch.OnSearchResult(msg.gen, msg.resp, msg.err))
		return m, tea.Batch(cmd, m.publishOutcome(msg.gen))

	case webMsg:
		cmd := m.runOrchEffects(m.orch.OnWebResult(msg.gen, msg.resp, msg.err))
		return m, tea.Batch(cmd, m.publishOutcome(msg.gen))

	case recentMsg:
		if msg.err != nil {
			log.Printf("UI: history load failed: %v", msg.err)
			return m, nil
		}
		queries := make([]string, 0, len(msg.entries))
		for _, e := range msg.entries {
			queries = append(queries, e.Query)
		}
		m.ctl.ShowRecent(queries)
		return m, nil

	case replayMsg:
		m.input.SetValue(msg.query)
		m.input.CursorEnd()
		m.ctl.SetQuery(msg.query)
		return m, m.startSearch(msg.query, "session")

	case sessionSavedMsg:
		if msg.err != nil {
			log.Printf("UI: session save failed: %v", msg.err)
			m.bus.Publish(eventbus.ErrorEvent{Message: "session save failed", Err: msg.err})
			return m, nil
		}
		m.bus.Publish(eventbus.SessionSavedEvent{Query: msg.query})
		return m, nil

	case healthMsg:
		if msg.err != nil {
			m.statusMsg = "backend unreachable"
			m.bus.Publish(eventbus.HealthCheckedEvent{Healthy: false, Detail: msg.err.Error()})
		} else {
			m.statusMsg = "connected"
			m.bus.Publish(eventbus.HealthCheckedEvent{Healthy: true, Detail: msg.detail})
		}
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case docPagerMsg:
		if msg.err != nil {
			m.statusMsg = "could not open document: " + msg.err.Error()
			return m, tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKey routes key events between the suggestion panel, the result
// list, and the text input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.ctl.OnEscape()
		return m, nil

	case "up":
		if m.ctl.PanelOpen() {
			m.ctl.OnArrowUp()
		} else if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil

	case "down":
		if m.ctl.PanelOpen() {
			m.ctl.OnArrowDown()
		} else if n := len(m.orch.ViewModel().Results); m.resultCursor < n-1 {
			m.resultCursor++
		}
		return m, nil

	case "enter":
		if effects, consumed := m.ctl.OnEnter(); consumed {
			return m, m.runQueryEffects(effects)
		}
		effects, ok := m.ctl.OnSubmit()
		if !ok {
			// Blank query: local no-op, nothing is sent anywhere
			return m, nil
		}
		return m, m.runQueryEffects(effects)

	case "ctrl+u":
		m.input.SetValue("")
		return m, m.runQueryEffects(m.ctl.OnClear())

	case "ctrl+r":
		return m, m.loadRecentCmd()

	case "ctrl+o":
		return m, m.openSelectedDocument()
	}

	// Everything else edits the text input
	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	after := m.input.Value()

	if after == before {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.runQueryEffects(m.ctl.OnQueryChange(after)))
}

// handleMouse implements pointer dismissal and suggestion picking. The
// mouse listener is scoped to the program: enabled at startup, released
// by the runtime on every exit path.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	state := m.viewState()
	top, bottom := m.renderer.ControlRegion(state)

	switch {
	case msg.Y >= top && msg.Y < top+views.InputLines:
		// Click on the input box refocuses it
		m.input.Focus()
		m.ctl.OnFocus()
		return m, textinput.Blink

	case m.ctl.PanelOpen() && msg.Y >= top+views.InputLines && msg.Y < bottom:
		idx := msg.Y - (top + views.InputLines)
		if m.ctl.PanelSource() == query.SourceRecent {
			idx-- // first panel line is the "recent" label
		}
		return m, m.runQueryEffects(m.ctl.OnSuggestionPick(idx))

	default:
		m.ctl.OnOutsideClick()
		return m, nil
	}
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	vm := m.orch.ViewModel()
	vm.Phase = m.orch.Phase()

	return views.ViewState{
		Width:         m.width,
		Height:        m.height,
		InputView:     m.input.View(),
		Suggestions:   m.ctl.Suggestions(),
		ActiveIndex:   m.ctl.ActiveIndex(),
		PanelOpen:     m.ctl.PanelOpen(),
		PanelSource:   m.ctl.PanelSource(),
		VM:            vm,
		ExpectedCount: m.orch.ExpectedCount(),
		DualMode:      m.cfg.Strategy == config.StrategyDual,
		ResultCursor:  m.resultCursor,
		SpinnerView:   m.spin.View(),
		StatusMessage: m.statusMsg,
		HelpModel:     m.help,
		HelpKeys:      m.keys,
	}
}

// runQueryEffects maps controller effects onto commands
func (m *Model) runQueryEffects(effects []query.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case query.ScheduleDebounce:
			gen := e.Gen
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return debounceMsg{gen: gen}
			}))

		case query.FetchSuggestions:
			cmds = append(cmds, m.suggestCmd(e.Gen, e.Query))

		case query.StartSearch:
			m.input.SetValue(e.Query)
			m.input.CursorEnd()
			cmds = append(cmds, m.startSearch(e.Query, e.Source))

		case query.FocusInput:
			m.input.Focus()
			cmds = append(cmds, textinput.Blink)
		}
	}
	return tea.Batch(cmds...)
}

// startSearch commits a query: publishes the commit event and kicks the
// orchestrator pipeline
func (m *Model) startSearch(q, source string) tea.Cmd {
	m.resultCursor = 0
	m.bus.Publish(eventbus.QueryCommittedEvent{Query: q, Source: source})
	cmd := m.runOrchEffects(m.orch.Start(q))
	m.bus.Publish(eventbus.SearchStartedEvent{Query: q, Generation: m.orch.Generation()})
	return tea.Batch(cmd, m.spin.Tick)
}

// runOrchEffects maps orchestrator effects onto commands
func (m *Model) runOrchEffects(effects []orchestrator.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case orchestrator.DoProbe:
			cmds = append(cmds, m.probeCmd(e.Gen, e.Query))

		case orchestrator.ScheduleDelay:
			gen := e.Gen
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return delayMsg{gen: gen}
			}))

		case orchestrator.DoSearch:
			cmds = append(cmds, m.searchCmd(e.Gen, e.Query, e.Page, e.PerPage))

		case orchestrator.DoWebSearch:
			cmds = append(cmds, m.webCmd(e.Gen, e.Query))

		case orchestrator.SaveSession:
			cmds = append(cmds, m.saveSessionCmd(e.Query))
		}
	}
	return tea.Batch(cmds...)
}

// publishOutcome emits settled/failed events once the current pipeline
// reaches a terminal phase
func (m *Model) publishOutcome(gen uint64) tea.Cmd {
	if gen != m.orch.Generation() || gen == m.announcedGen {
		return nil
	}
	vm := m.orch.ViewModel()
	switch m.orch.Phase() {
	case domain.PhaseSettled:
		m.announcedGen = gen
		m.bus.Publish(eventbus.SearchSettledEvent{
			Query:        vm.Query,
			TotalResults: vm.TotalResults,
			ElapsedMs:    vm.ElapsedMs,
		})
	case domain.PhaseErrored:
		m.announcedGen = gen
		m.bus.Publish(eventbus.SearchFailedEvent{Query: vm.Query, Message: vm.ErrMessage})
	}
	return nil
}

func (m *Model) suggestCmd(gen uint64, q string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.api.Suggest(context.Background(), q)
		return suggestionsMsg{gen: gen, items: items, err: err}
	}
}

func (m *Model) probeCmd(gen uint64, q string) tea.Cmd {
	return func() tea.Msg {
		total, err := m.api.Probe(context.Background(), q)
		return probeMsg{gen: gen, total: total, err: err}
	}
}

func (m *Model) searchCmd(gen uint64, q string, page, perPage int) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.Search(context.Background(), q, page, perPage)
		return searchMsg{gen: gen, resp: resp, err: err}
	}
}

func (m *Model) webCmd(gen uint64, q string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.WebSearch(context.Background(), q)
		return webMsg{gen: gen, resp: resp, err: err}
	}
}

func (m *Model) saveSessionCmd(q string) tea.Cmd {
	if m.sessions == nil {
		return nil
	}
	return func() tea.Msg {
		err := m.sessions.Save(&config.Session{Query: q})
		return sessionSavedMsg{query: q, err: err}
	}
}

func (m *Model) loadRecentCmd() tea.Cmd {
	if m.hist == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := m.hist.Recent(recentLimit)
		return recentMsg{entries: entries, err: err}
	}
}

func (m *Model) healthCmd() tea.Cmd {
	return func() tea.Msg {
		detail, err := m.api.Health(context.Background())
		return healthMsg{detail: detail, err: err}
	}
}
