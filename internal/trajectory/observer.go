package trajectory

import "github.com/daniacca/nastrand/internal/kinetics"

// Observer adapts a NotificationManager into the driver.StepObserver
// shape (result kinetics.StepResult, simTime float64, steps int): every
// step is wrapped into a StepEvent, stamped with the current wall clock
// and the ensemble's post-step total flux, and fanned out to
// NotifierIDs.
type Observer struct {
	RunID       string
	Ensemble    *kinetics.Ensemble
	Manager     *NotificationManager
	NotifierIDs []string
}

// Observe builds and enqueues a StepEvent for one dispatcher step. Its
// signature matches driver.StepObserver so it can be assigned directly to
// a driver.Run's OnStep field.
func (o *Observer) Observe(result kinetics.StepResult, simTime float64, steps int) {
	ev := NewStepEvent(o.RunID, steps, simTime, result, o.Ensemble.TotalFlux(), nowUnix())
	o.Manager.Enqueue(ev, o.NotifierIDs)
}
