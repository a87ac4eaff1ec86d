// Package trajectory is the logging/reporting layer spec.md places out of
// scope for THE CORE: structured per-step events, diagnostic per-entry
// dumps, and a pluggable notifier fan-out for live trajectory streaming.
package trajectory

import (
	"encoding/json"
	"time"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// StepEvent is the structured record of one dispatcher step: which kind
// of event fired, the touched entry (entries), the new total flux, and
// the simulated time at which it occurred.
type StepEvent struct {
	RunID     string          `json:"run_id"`
	Step      int             `json:"step"`
	SimTime   float64         `json:"sim_time"`
	Timestamp int64           `json:"timestamp"`
	Kind      string          `json:"kind"`
	Entry     *kinetics.Dump  `json:"entry,omitempty"`
	NewEntry  *kinetics.Dump  `json:"new_entry,omitempty"`
	TotalFlux float64         `json:"total_flux"`
}

// eventKindName renders an EventKind the way the external reporting
// surface names it.
func eventKindName(k kinetics.EventKind) string {
	switch k {
	case kinetics.EventMove:
		return "move"
	case kinetics.EventDissociation:
		return "dissociation"
	case kinetics.EventJoin:
		return "join"
	default:
		return "unknown"
	}
}

// NewStepEvent builds a StepEvent from a dispatcher result. now is
// injected (rather than taken from time.Now() internally) so callers
// control the wall-clock timestamp; pass time.Now().Unix() in production.
func NewStepEvent(runID string, step int, simTime float64, result kinetics.StepResult, totalFlux float64, now int64) StepEvent {
	ev := StepEvent{
		RunID:     runID,
		Step:      step,
		SimTime:   simTime,
		Timestamp: now,
		Kind:      eventKindName(result.Kind),
		TotalFlux: totalFlux,
	}
	if result.Entry != nil {
		d := result.Entry.Dump()
		ev.Entry = &d
	}
	if result.NewEntry != nil {
		d := result.NewEntry.Dump()
		ev.NewEntry = &d
	}
	return ev
}

// JSON returns the step event as JSON bytes.
func (e StepEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// nowUnix is a thin seam over time.Now so production call sites don't
// have to thread a clock through every StepEvent construction.
func nowUnix() int64 { return time.Now().Unix() }
