// Package orchestrator runs the search submission pipeline and owns the
// result view-model. Two pipeline shapes exist, selected per deployment:
// probe-then-delay-then-fetch against the single primary source, or a
// parallel dual-source fetch with an all-or-nothing join. Every
// submission carries a generation token; completions from a superseded
// submission are discarded, so overlapping pipelines can never race the
// visible state.
package orchestrator

import (
	"log"
	"math/rand"
	"time"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/config"
	"github.com/utcofficial/sophon-search/internal/domain"
)

// DefaultExpectedCount is the placeholder count used when no probe
// result is available
const DefaultExpectedCount = 3

// expectedCount bounds for placeholder sizing
const (
	minExpected = 1
	maxExpected = 5
)

// genericErrMessage is shown when a failure carries no message
const genericErrMessage = "Search failed. Please try again."

// Options configures the orchestrator
type Options struct {
	Strategy config.Strategy
	PerPage  int
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Orchestrator owns the submission pipeline state
type Orchestrator struct {
	opts Options
	rng  *rand.Rand

	gen           uint64
	query         string
	phase         domain.Phase
	vm            domain.SearchViewModel
	expectedCount int
	lastExpected  int // carried between searches for the dual default

	// dual-source join slots for the current generation
	primary *client.SearchResponse
	web     *client.WebResponse
}

// New creates an orchestrator
func New(opts Options) *Orchestrator {
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	if opts.MinDelay <= 0 {
		opts.MinDelay = 2 * time.Second
	}
	if opts.MaxDelay <= opts.MinDelay {
		opts.MaxDelay = opts.MinDelay + time.Second
	}
	return &Orchestrator{
		opts:         opts,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:        domain.PhaseIdle,
		lastExpected: DefaultExpectedCount,
	}
}

// Phase returns the current lifecycle phase. The phase persists until
// the next Start; idle is never re-entered automatically.
func (o *Orchestrator) Phase() domain.Phase { return o.phase }

// Generation returns the token of the most recently started submission
func (o *Orchestrator) Generation() uint64 { return o.gen }

// Query returns the query of the most recently started submission
func (o *Orchestrator) Query() string { return o.query }

// ViewModel returns the current result view-model
func (o *Orchestrator) ViewModel() domain.SearchViewModel { return o.vm }

// ExpectedCount returns the placeholder count for the loading phase,
// always within [1, 5]
func (o *Orchestrator) ExpectedCount() int {
	return clampExpected(o.expectedCount)
}

// Start begins a new submission pipeline, superseding any in-flight one
func (o *Orchestrator) Start(query string) []Effect {
	o.gen++
	o.query = query
	o.primary = nil
	o.web = nil

	log.Printf("Orchestrator: starting %s pipeline gen=%d query=%q", o.opts.Strategy, o.gen, query)

	switch o.opts.Strategy {
	case config.StrategyDual:
		o.phase = domain.PhaseAwaiting
		o.expectedCount = o.lastExpected
		return []Effect{
			DoSearch{Gen: o.gen, Query: query, Page: 1, PerPage: o.opts.PerPage},
			DoWebSearch{Gen: o.gen, Query: query},
		}
	default:
		o.phase = domain.PhaseProbing
		o.expectedCount = DefaultExpectedCount
		return []Effect{DoProbe{Gen: o.gen, Query: query}}
	}
}

// OnProbe handles the count probe settling. A probe failure is
// absorbed: the default expected count is used and the pipeline
// continues into the delay.
func (o *Orchestrator) OnProbe(gen uint64, total int, err error) []Effect {
	if gen != o.gen || o.phase != domain.PhaseProbing {
		return nil
	}

	if err != nil {
		log.Printf("Orchestrator: probe failed, using default count: %v", err)
		o.expectedCount = DefaultExpectedCount
	} else {
		o.expectedCount = clampExpected(total)
	}

	o.phase = domain.PhaseAwaiting
	return []Effect{ScheduleDelay{Gen: gen, After: o.jitterDelay()}}
}

// OnDelayElapsed handles the artificial delay timer firing. A timer from
// a superseded submission is inert.
func (o *Orchestrator) OnDelayElapsed(gen uint64) []Effect {
	if gen != o.gen || o.phase != domain.PhaseAwaiting {
		return nil
	}
	return []Effect{DoSearch{Gen: gen, Query: o.query, Page: 1, PerPage: o.opts.PerPage}}
}

// OnSearchResult handles the primary search settling
func (o *Orchestrator) OnSearchResult(gen uint64, resp *client.SearchResponse, err error) []Effect {
	if gen != o.gen {
		return nil
	}
	// A join that already failed discards the sibling's completion
	if o.phase == domain.PhaseErrored {
		return nil
	}

	if err != nil {
		o.fail(err)
		return nil
	}

	if o.opts.Strategy == config.StrategyDual {
		o.primary = resp
		return o.tryJoin()
	}

	o.settle(domain.SearchViewModel{
		Query:        o.query,
		Results:      resp.Results,
		TotalResults: resp.TotalResults,
		ElapsedMs:    resp.ElapsedMs,
		Phase:        domain.PhaseSettled,
	})
	o.lastExpected = clampExpected(resp.TotalResults)
	return []Effect{SaveSession{Query: o.query}}
}

// OnWebResult handles the supplementary source settling (dual only)
func (o *Orchestrator) OnWebResult(gen uint64, resp *client.WebResponse, err error) []Effect {
	if gen != o.gen || o.opts.Strategy != config.StrategyDual {
		return nil
	}
	if o.phase == domain.PhaseErrored {
		return nil
	}

	if err != nil {
		o.fail(err)
		return nil
	}

	o.web = resp
	return o.tryJoin()
}

// tryJoin settles once both dual sources have completed. Both must
// succeed; a single failure has already discarded everything in fail.
func (o *Orchestrator) tryJoin() []Effect {
	if o.primary == nil || o.web == nil {
		return nil
	}

	vm := domain.SearchViewModel{
		Query:        o.query,
		Results:      o.primary.Results,
		Answer:       o.web.Wikipedia,
		Snippets:     o.web.WebResults,
		TotalResults: o.primary.TotalResults + len(o.web.WebResults),
		ElapsedMs:    o.primary.ElapsedMs,
		Phase:        domain.PhaseSettled,
	}
	o.settle(vm)
	o.lastExpected = clampExpected(vm.TotalResults)
	return []Effect{SaveSession{Query: o.query}}
}

// settle replaces the view-model wholesale
func (o *Orchestrator) settle(vm domain.SearchViewModel) {
	o.phase = domain.PhaseSettled
	o.vm = vm
	log.Printf("Orchestrator: settled gen=%d total=%d elapsed=%.1fms", o.gen, vm.TotalResults, vm.ElapsedMs)
}

// fail replaces the view-model with an error state, discarding any
// partial results
func (o *Orchestrator) fail(err error) {
	msg := genericErrMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	o.phase = domain.PhaseErrored
	o.primary = nil
	o.web = nil
	o.vm = domain.SearchViewModel{
		Query:      o.query,
		Phase:      domain.PhaseErrored,
		ErrMessage: msg,
	}
	log.Printf("Orchestrator: errored gen=%d: %s", o.gen, msg)
}

// jitterDelay draws the artificial loading delay uniformly from
// [MinDelay, MaxDelay)
func (o *Orchestrator) jitterDelay() time.Duration {
	span := int64(o.opts.MaxDelay - o.opts.MinDelay)
	return o.opts.MinDelay + time.Duration(o.rng.Int63n(span))
}

func clampExpected(n int) int {
	if n < minExpected {
		return minExpected
	}
	if n > maxExpected {
		return maxExpected
	}
	return n
}
