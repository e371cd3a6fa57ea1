package metrics

import "time"

// Window accumulates timing stats across gradient-descent steps.
type Window struct {
	steps   int
	compute time.Duration
}

// Record adds one step's compute time to the window.
func (w *Window) Record(computeTime time.Duration) {
	w.steps++
	w.compute += computeTime
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{}
	if w.compute > 0 {
		snap.StepsPerSec = float64(w.steps) / w.compute.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepMicros = (w.compute.Seconds() * 1e6) / float64(w.steps)
	}

	w.steps = 0
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	StepsPerSec   float64
	AvgStepMicros float64
}
