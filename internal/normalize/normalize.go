// Package normalize standardizes feature vectors against dataset-wide
// statistics.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"irisvision/internal/dataset"
)

// Stats holds per-feature mean and population standard deviation.
type Stats struct {
	Mean [dataset.NumFeatures]float64
	Std  [dataset.NumFeatures]float64
}

// ComputeStats measures every feature column of samples. The standard
// deviation divides by N, not N-1.
func ComputeStats(samples []dataset.Sample) Stats {
	var s Stats
	if len(samples) == 0 {
		return s
	}
	col := make([]float64, len(samples))
	for i := 0; i < dataset.NumFeatures; i++ {
		for k, sample := range samples {
			col[k] = sample.Features[i]
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[i] = mean
		s.Std[i] = math.Sqrt(variance)
	}
	return s
}

// Apply maps v into the standardized frame. A zero deviation divides by 1.
func (s Stats) Apply(v [dataset.NumFeatures]float64) [dataset.NumFeatures]float64 {
	var out [dataset.NumFeatures]float64
	for i, val := range v {
		std := s.Std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (val - s.Mean[i]) / std
	}
	return out
}

// ApplyAll standardizes the feature rows of samples, keeping their order.
func (s Stats) ApplyAll(samples []dataset.Sample) [][dataset.NumFeatures]float64 {
	out := make([][dataset.NumFeatures]float64, len(samples))
	for k, sample := range samples {
		out[k] = s.Apply(sample.Features)
	}
	return out
}

// Dataset computes fresh statistics for samples and returns them along with
// the standardized rows.
func Dataset(samples []dataset.Sample) (Stats, [][dataset.NumFeatures]float64) {
	s := ComputeStats(samples)
	return s, s.ApplyAll(samples)
}
