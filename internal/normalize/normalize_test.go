package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisvision/internal/dataset"
)

func TestComputeStatsPopulation(t *testing.T) {
	samples := []dataset.Sample{
		{Features: [4]float64{1, 2, 5, 0}},
		{Features: [4]float64{3, 2, 7, 0}},
	}
	s := ComputeStats(samples)
	assert.Equal(t, [4]float64{2, 2, 6, 0}, s.Mean)
	// Population deviation of {1,3} is 1, not sqrt(2).
	assert.InDelta(t, 1.0, s.Std[0], 1e-12)
	assert.InDelta(t, 1.0, s.Std[2], 1e-12)
	assert.Equal(t, 0.0, s.Std[1])
}

func TestApplyZeroDeviation(t *testing.T) {
	s := Stats{Mean: [4]float64{1, 1, 1, 1}, Std: [4]float64{0, 2, 0, 4}}
	got := s.Apply([4]float64{3, 3, 3, 3})
	assert.Equal(t, [4]float64{2, 1, 2, 0.5}, got)
	for _, v := range got {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestIrisStandardized(t *testing.T) {
	samples := dataset.Iris()
	_, rows := Dataset(samples)
	require.Len(t, rows, len(samples))

	for i := 0; i < dataset.NumFeatures; i++ {
		var sum, sq float64
		for _, row := range rows {
			sum += row[i]
		}
		mean := sum / float64(len(rows))
		for _, row := range rows {
			sq += (row[i] - mean) * (row[i] - mean)
		}
		std := math.Sqrt(sq / float64(len(rows)))
		assert.InDeltaf(t, 0.0, mean, 1e-9, "feature %d mean", i)
		assert.InDeltaf(t, 1.0, std, 1e-9, "feature %d std", i)
	}
}

func TestStatsDeterministic(t *testing.T) {
	a := ComputeStats(dataset.Iris())
	b := ComputeStats(dataset.Iris())
	assert.Equal(t, a, b)
}

func TestExternalVectorUsesDatasetFrame(t *testing.T) {
	s := ComputeStats(dataset.Iris())
	v := [4]float64{4, 2, 1, 0}
	got := s.Apply(v)
	for i := range v {
		assert.InDelta(t, (v[i]-s.Mean[i])/s.Std[i], got[i], 1e-12)
	}
}
