package domain

// Phase represents the lifecycle phase of the search pipeline.
// Exactly one phase is active at a time; transitions are driven only
// by the search orchestrator. The suggesting state runs in parallel
// with these phases and is tracked by the query controller's panel
// state, not here.
type Phase int

// Lifecycle phases
const (
	PhaseIdle Phase = iota
	PhaseProbing
	PhaseAwaiting
	PhaseSettled
	PhaseErrored
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProbing:
		return "probing"
	case PhaseAwaiting:
		return "awaiting"
	case PhaseSettled:
		return "settled"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// InFlight reports whether the phase belongs to a running pipeline
func (p Phase) InFlight() bool {
	return p == PhaseProbing || p == PhaseAwaiting
}

// SearchResult represents one matched document
type SearchResult struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Snippet      string   `json:"snippet"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
	SizeBytes    int64    `json:"size_bytes"`
}

// SupplementaryAnswer represents an answer box from the supplementary
// source, present at most once per search
type SupplementaryAnswer struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
}

// WebSnippet represents one web-style snippet from the supplementary source
type WebSnippet struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchViewModel is the aggregate result state consumed by the
// presenter. It is owned by the orchestrator and replaced wholesale on
// every settled or errored transition, never partially mutated.
type SearchViewModel struct {
	Query        string
	Results      []SearchResult
	Answer       *SupplementaryAnswer
	Snippets     []WebSnippet
	TotalResults int
	ElapsedMs    float64
	Phase        Phase
	ErrMessage   string // set only when Phase == PhaseErrored
}

// HistoryEntry represents one committed search recorded in the history store
type HistoryEntry struct {
	Query       string
	CommittedAt int64 // unix seconds
}
