package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(24, 10*time.Millisecond, 0.25)
	w.Record(24, 30*time.Millisecond, 0.20)
	snap := w.Snapshot()
	require.Equal(t, 2, snap.Epochs)
	assert.InDelta(t, 50, snap.EpochsPerSec, 1e-6)
	assert.InDelta(t, 1200, snap.SamplesPerSec, 1e-6)
	assert.InDelta(t, 20, snap.AvgComputeMS, 1e-6)
	assert.Equal(t, 0.20, snap.LastLoss)
	if w.samples != 0 || w.epochs != 0 || w.compute != 0 {
		t.Fatalf("window was not reset")
	}

	empty := w.Snapshot()
	assert.Zero(t, empty.EpochsPerSec)
	assert.Zero(t, empty.AvgComputeMS)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 75.0, Accuracy([]float64{0.1, 0.5, 0.9, 0.4}, []int{0, 1, 1, 1}))
	assert.Equal(t, 100.0, Accuracy([]float64{0.2}, []int{0, 1}))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(0.5))
	assert.InDelta(t, 80, Confidence(0.9), 1e-9)
	assert.InDelta(t, 80, Confidence(0.1), 1e-9)
}
