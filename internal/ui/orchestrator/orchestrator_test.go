package orchestrator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/config"
	"github.com/utcofficial/sophon-search/internal/domain"
)

func probeOrchestrator() *Orchestrator {
	return New(Options{
		Strategy: config.StrategyProbe,
		PerPage:  10,
		MinDelay: 2 * time.Second,
		MaxDelay: 4 * time.Second,
	})
}

func dualOrchestrator() *Orchestrator {
	return New(Options{Strategy: config.StrategyDual, PerPage: 10})
}

func sampleResponse(total int) *client.SearchResponse {
	return &client.SearchResponse{
		Results: []domain.SearchResult{
			{ID: "doc1.txt", Title: "Doc One", Snippet: "first", Score: 1.5},
			{ID: "doc2.txt", Title: "Doc Two", Snippet: "second", Score: 0.7},
		},
		TotalResults: total,
		ElapsedMs:    123.4,
		Page:         1,
		PerPage:      10,
	}
}

func sampleWeb() *client.WebResponse {
	return &client.WebResponse{
		Wikipedia: &domain.SupplementaryAnswer{Title: "Cat", Extract: "A small animal", URL: "https://example.org/cat"},
		WebResults: []domain.WebSnippet{
			{Title: "Cats", URL: "https://example.org/1", Snippet: "about cats"},
			{Title: "More cats", URL: "https://example.org/2", Snippet: "more"},
		},
	}
}

func TestProbePipelineHappyPath(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	effects := o.Start("cat")
	require.Len(t, effects, 1)
	probe := effects[0].(DoProbe)
	require.Equal(t, "cat", probe.Query)
	require.Equal(t, domain.PhaseProbing, o.Phase())

	effects = o.OnProbe(probe.Gen, 12, nil)
	require.Len(t, effects, 1)
	delay := effects[0].(ScheduleDelay)
	require.Equal(t, domain.PhaseAwaiting, o.Phase())
	require.Equal(t, 5, o.ExpectedCount(), "probe total of 12 clamps to 5")
	require.GreaterOrEqual(t, delay.After, 2*time.Second)
	require.Less(t, delay.After, 4*time.Second)

	effects = o.OnDelayElapsed(delay.Gen)
	require.Len(t, effects, 1)
	search := effects[0].(DoSearch)
	require.Equal(t, 1, search.Page)
	require.Equal(t, 10, search.PerPage)

	effects = o.OnSearchResult(search.Gen, sampleResponse(12), nil)
	require.Len(t, effects, 1)
	require.Equal(t, "cat", effects[0].(SaveSession).Query)

	require.Equal(t, domain.PhaseSettled, o.Phase())
	vm := o.ViewModel()
	require.Equal(t, 12, vm.TotalResults)
	require.InDelta(t, 123.4, vm.ElapsedMs, 0.001)
	require.Len(t, vm.Results, 2)
	require.Nil(t, vm.Answer)
}

func TestProbeFailureIsAbsorbed(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	effects := o.Start("cat")
	gen := effects[0].(DoProbe).Gen

	effects = o.OnProbe(gen, 0, errors.New("boom"))
	require.Len(t, effects, 1, "the pipeline continues past a failed probe")
	require.IsType(t, ScheduleDelay{}, effects[0])
	require.Equal(t, DefaultExpectedCount, o.ExpectedCount())
	require.Equal(t, domain.PhaseAwaiting, o.Phase())
}

func TestExpectedCountAlwaysWithinBounds(t *testing.T) {
	t.Parallel()

	for _, total := range []int{0, 1, 3, 5, 12, 10000} {
		o := probeOrchestrator()
		gen := o.Start("q")[0].(DoProbe).Gen
		o.OnProbe(gen, total, nil)
		require.GreaterOrEqual(t, o.ExpectedCount(), 1)
		require.LessOrEqual(t, o.ExpectedCount(), 5)
	}
}

func TestMainFetchFailureSurfaces(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	gen := o.Start("cat")[0].(DoProbe).Gen
	delay := o.OnProbe(gen, 3, nil)[0].(ScheduleDelay)
	o.OnDelayElapsed(delay.Gen)

	effects := o.OnSearchResult(gen, nil, errors.New("connection refused"))
	require.Empty(t, effects)
	require.Equal(t, domain.PhaseErrored, o.Phase())

	vm := o.ViewModel()
	require.Equal(t, "connection refused", vm.ErrMessage)
	require.Empty(t, vm.Results)
	require.Zero(t, vm.TotalResults)
}

func TestSupersededDelayIsInert(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	gen1 := o.Start("first")[0].(DoProbe).Gen
	delay1 := o.OnProbe(gen1, 3, nil)[0].(ScheduleDelay)

	// A second submission supersedes the first mid-delay
	gen2 := o.Start("second")[0].(DoProbe).Gen
	require.Greater(t, gen2, gen1)

	require.Empty(t, o.OnDelayElapsed(delay1.Gen), "a superseded delay must not resume its search")
}

func TestOnlyLatestGenerationMutatesState(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	gen1 := o.Start("first")[0].(DoProbe).Gen
	delay1 := o.OnProbe(gen1, 3, nil)[0].(ScheduleDelay)
	o.OnDelayElapsed(delay1.Gen)

	gen2 := o.Start("second")[0].(DoProbe).Gen
	delay2 := o.OnProbe(gen2, 3, nil)[0].(ScheduleDelay)
	o.OnDelayElapsed(delay2.Gen)

	// The older pipeline completes after the newer one started
	second := sampleResponse(2)
	o.OnSearchResult(gen2, second, nil)
	o.OnSearchResult(gen1, sampleResponse(99), nil)

	require.Equal(t, domain.PhaseSettled, o.Phase())
	require.Equal(t, "second", o.ViewModel().Query)
	require.Equal(t, 2, o.ViewModel().TotalResults)
}

func TestDualPipelineJoinsBothSources(t *testing.T) {
	t.Parallel()
	o := dualOrchestrator()

	effects := o.Start("cat")
	require.Len(t, effects, 2)
	search := effects[0].(DoSearch)
	web := effects[1].(DoWebSearch)
	require.Equal(t, domain.PhaseAwaiting, o.Phase(), "dual mode skips the probe")

	// Completion order is unconstrained; web first here
	require.Empty(t, o.OnWebResult(web.Gen, sampleWeb(), nil), "join does not resolve until both settle")
	require.Equal(t, domain.PhaseAwaiting, o.Phase())

	effects = o.OnSearchResult(search.Gen, sampleResponse(7), nil)
	require.Len(t, effects, 1)
	require.IsType(t, SaveSession{}, effects[0])

	vm := o.ViewModel()
	require.Equal(t, domain.PhaseSettled, o.Phase())
	require.Equal(t, 7+2, vm.TotalResults, "total counts supplementary snippets by item")
	require.InDelta(t, 123.4, vm.ElapsedMs, 0.001, "elapsed time is the primary's only")
	require.NotNil(t, vm.Answer)
	require.Len(t, vm.Snippets, 2)
}

func TestDualJoinFailsTogether(t *testing.T) {
	t.Parallel()
	o := dualOrchestrator()

	effects := o.Start("cat")
	search := effects[0].(DoSearch)
	web := effects[1].(DoWebSearch)

	// The primary already succeeded; the supplementary failure still
	// discards everything
	o.OnSearchResult(search.Gen, sampleResponse(2), nil)
	o.OnWebResult(web.Gen, nil, errors.New("web source down"))

	require.Equal(t, domain.PhaseErrored, o.Phase())
	vm := o.ViewModel()
	require.Empty(t, vm.Results, "partial data is never shown next to an error")
	require.Nil(t, vm.Answer)
	require.Empty(t, vm.Snippets)
	require.Equal(t, "web source down", vm.ErrMessage)
}

func TestDualLateSiblingAfterFailureIsIgnored(t *testing.T) {
	t.Parallel()
	o := dualOrchestrator()

	effects := o.Start("cat")
	search := effects[0].(DoSearch)
	web := effects[1].(DoWebSearch)

	o.OnWebResult(web.Gen, nil, errors.New("down"))
	require.Equal(t, domain.PhaseErrored, o.Phase())

	require.Empty(t, o.OnSearchResult(search.Gen, sampleResponse(5), nil))
	require.Equal(t, domain.PhaseErrored, o.Phase())
	require.Empty(t, o.ViewModel().Results)
}

func TestErrorFallsBackToGenericMessage(t *testing.T) {
	t.Parallel()
	o := dualOrchestrator()

	effects := o.Start("cat")
	search := effects[0].(DoSearch)

	o.OnSearchResult(search.Gen, nil, errors.New(""))
	require.Equal(t, genericErrMessage, o.ViewModel().ErrMessage)
}

func TestPhasePersistsUntilNextStart(t *testing.T) {
	t.Parallel()
	o := probeOrchestrator()

	gen := o.Start("cat")[0].(DoProbe).Gen
	delay := o.OnProbe(gen, 3, nil)[0].(ScheduleDelay)
	o.OnDelayElapsed(delay.Gen)
	o.OnSearchResult(gen, sampleResponse(1), nil)
	require.Equal(t, domain.PhaseSettled, o.Phase())

	// Nothing re-enters idle; only a new Start moves the phase
	require.Equal(t, domain.PhaseSettled, o.Phase())
	o.Start("dog")
	require.Equal(t, domain.PhaseProbing, o.Phase())
}
