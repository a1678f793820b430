package metrics

import (
	"math"
	"time"
)

// Window accumulates epoch timings between two log lines.
type Window struct {
	samples  int
	compute  time.Duration
	epochs   int
	lastLoss float64
}

// Record adds one finished epoch over the given number of samples.
func (w *Window) Record(samples int, computeTime time.Duration, loss float64) {
	w.samples += samples
	w.compute += computeTime
	w.epochs++
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Epochs: w.epochs}
	if w.compute > 0 {
		snap.EpochsPerSec = float64(w.epochs) / w.compute.Seconds()
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}
	snap.LastLoss = w.lastLoss

	w.samples = 0
	w.compute = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Epochs        int
	EpochsPerSec  float64
	SamplesPerSec float64
	AvgComputeMS  float64
	LastLoss      float64
}

// Accuracy is the percentage of scores that round to their label.
func Accuracy(scores []float64, labels []int) float64 {
	n := len(scores)
	if len(labels) < n {
		n = len(labels)
	}
	if n == 0 {
		return 0
	}
	hits := 0
	for i := 0; i < n; i++ {
		predicted := 0
		if scores[i] >= 0.5 {
			predicted = 1
		}
		if predicted == labels[i] {
			hits++
		}
	}
	return 100 * float64(hits) / float64(n)
}

// Confidence maps a sigmoid score to how far it sits from the 0.5 boundary,
// in percent.
func Confidence(score float64) float64 {
	return math.Abs(score-0.5) * 200
}
