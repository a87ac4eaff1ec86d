package kinetics

import "fmt"

// StateError is returned by a driver-level run loop (see internal/driver)
// when the ensemble reaches a dead state: total flux is zero and no stop
// predicate has matched. This is a terminal simulation outcome, not a
// recoverable per-step error (spec.md 7): the run is over, but it did not
// crash.
type StateError struct {
	Time float64
}

func (e *StateError) Error() string {
	return fmt.Sprintf("kinetics: unproductive simulation, total flux reached zero at time %.6f with no stop predicate matched", e.Time)
}
