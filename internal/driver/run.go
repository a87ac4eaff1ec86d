package driver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/daniacca/nastrand/internal/kinetics"
)

// State is a run's position in the spec.md 4.5 state machine:
// Initialized -> Running -> {Stopped, Expired, Error}.
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateStopped
	StateExpired
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateExpired:
		return "expired"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a completed Run.
type Outcome struct {
	State   State
	SimTime float64
	Steps   int
	Err     error
}

// StepObserver is notified after every successful dispatcher step, before
// the stop predicate is checked. Used by internal/trajectory to stream
// events; nil is a valid no-op observer.
type StepObserver func(result kinetics.StepResult, simTime float64, steps int)

// Run drives one kinetics.Ensemble through spec.md 4.5's state machine: it
// draws a uniform choice and an exponential waiting time each iteration,
// steps the dispatcher, and checks the configured stop predicate, until
// the predicate matches, the ensemble reaches a dead (zero-flux) state, or
// the configured time budget is exhausted. A nil StopPredicate never
// matches, so such a run ends only on a dead state or budget expiry.
type Run struct {
	ID uuid.UUID

	Ensemble      *kinetics.Ensemble
	Evaluator     *kinetics.Evaluator
	StopPredicate *kinetics.Predicate
	EventBudget   float64

	rng   *rand.Rand
	log   kinetics.Logger
	state State

	OnStep StepObserver
}

// NewRun constructs a Run seeded deterministically from cfg.Seed (0 means
// "seed from the current wall-clock time", matching the teacher's default
// time-seeded *rand.Rand in achem.NewEnvironment, adapted here to accept
// an explicit seed for reproducible trajectories).
func NewRun(ensemble *kinetics.Ensemble, stopPredicate *kinetics.Predicate, cfg Config, log kinetics.Logger) *Run {
	if log == nil {
		log = kinetics.NoOpLogger{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Run{
		ID:            uuid.New(),
		Ensemble:      ensemble,
		Evaluator:     kinetics.NewEvaluator(log),
		StopPredicate: stopPredicate,
		EventBudget:   cfg.EventBudget,
		rng:           rand.New(rand.NewSource(seed)),
		log:           log,
		state:         StateInitialized,
	}
}

// State returns the run's current state-machine position.
func (r *Run) State() State { return r.state }

// RunToCompletion drives the dispatcher loop until a terminal state is
// reached. ctx cancellation transitions to StateError with ctx.Err().
func (r *Run) RunToCompletion(ctx context.Context) Outcome {
	if r.state != StateInitialized {
		return Outcome{State: StateError, Err: fmt.Errorf("driver: run %s is not in the initialized state", r.ID)}
	}
	r.state = StateRunning
	r.Ensemble.Initialize()

	var simTime float64
	steps := 0

	for {
		select {
		case <-ctx.Done():
			r.state = StateError
			return Outcome{State: StateError, SimTime: simTime, Steps: steps, Err: ctx.Err()}
		default:
		}

		total := r.Ensemble.TotalFlux()
		if total <= 0 {
			r.state = StateError
			err := &kinetics.StateError{Time: simTime}
			return Outcome{State: StateError, SimTime: simTime, Steps: steps, Err: err}
		}

		choice := r.rng.Float64() * total
		dt := -math.Log(r.rng.Float64()) / total
		simTime += dt

		result := r.Ensemble.Step(choice, simTime)
		steps++
		if r.OnStep != nil {
			r.OnStep(result, simTime, steps)
		}

		if r.StopPredicate != nil && r.Evaluator.Matches(r.Ensemble, r.StopPredicate) {
			r.state = StateStopped
			return Outcome{State: StateStopped, SimTime: simTime, Steps: steps}
		}

		if r.EventBudget > 0 && simTime >= r.EventBudget {
			r.state = StateExpired
			return Outcome{State: StateExpired, SimTime: simTime, Steps: steps}
		}
	}
}
