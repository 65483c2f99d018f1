package orchestrator

import "time"

// Effect is a side effect requested by the orchestrator. The caller
// maps effects onto commands; every network or timer effect carries the
// generation token that gates its completion.
type Effect interface {
	isEffect()
}

// DoProbe asks for a minimal-page-size count probe
type DoProbe struct {
	Gen   uint64
	Query string
}

func (DoProbe) isEffect() {}

// ScheduleDelay asks for the artificial loading delay timer
type ScheduleDelay struct {
	Gen   uint64
	After time.Duration
}

func (ScheduleDelay) isEffect() {}

// DoSearch asks for a full primary search
type DoSearch struct {
	Gen     uint64
	Query   string
	Page    int
	PerPage int
}

func (DoSearch) isEffect() {}

// DoWebSearch asks for the supplementary source fetch
type DoWebSearch struct {
	Gen   uint64
	Query string
}

func (DoWebSearch) isEffect() {}

// SaveSession mirrors the committed query into shareable session state
type SaveSession struct {
	Query string
}

func (SaveSession) isEffect() {}
