// Package trainer runs epochs of online gradient descent over a dataset and
// schedules them one tick at a time.
package trainer

import (
	"github.com/pkg/errors"

	"irisvision/internal/dataset"
	"irisvision/internal/model"
	"irisvision/internal/normalize"
)

// Record is the loss measured for one finished epoch.
type Record struct {
	Epoch int
	Loss  float64
}

// Prediction is one dataset row as seen by the current weights.
type Prediction struct {
	SepalLength float64
	SepalWidth  float64
	Score       float64
	Label       int
}

// TrainEpoch normalizes samples once and then, in dataset order, applies one
// gradient step per sample. Each step sees the weights left by the previous
// one. It returns the updated weights and the mean squared error of the
// outputs observed before each step.
func TrainEpoch(samples []dataset.Sample, w model.Weights, lr float64) (model.Weights, float64, error) {
	if len(samples) == 0 {
		return w, 0, dataset.ErrEmptyDataset
	}
	if lr <= 0 {
		return w, 0, errors.Errorf("trainer: learning rate must be > 0 (got %g)", lr)
	}
	_, rows := normalize.Dataset(samples)
	total := 0.0
	for k, input := range rows {
		target := float64(samples[k].Label)
		out := w.Backprop(input, target, lr)
		diff := target - out
		total += diff * diff
	}
	return w, total / float64(len(rows)), nil
}

// Evaluate scores every sample with c, in dataset order.
func Evaluate(samples []dataset.Sample, c model.Classifier) []Prediction {
	_, rows := normalize.Dataset(samples)
	preds := make([]Prediction, len(rows))
	for k, input := range rows {
		preds[k] = Prediction{
			SepalLength: samples[k].Features[0],
			SepalWidth:  samples[k].Features[1],
			Score:       c.Predict(input),
			Label:       samples[k].Label,
		}
	}
	return preds
}

// Scores splits predictions into parallel score and label slices.
func Scores(preds []Prediction) ([]float64, []int) {
	scores := make([]float64, len(preds))
	labels := make([]int, len(preds))
	for i, p := range preds {
		scores[i] = p.Score
		labels[i] = p.Label
	}
	return scores, labels
}
