// Package feedback fine-tunes the network on a single example labeled by a
// human reviewer.
package feedback

import (
	"k8s.io/klog/v2"

	"irisvision/internal/dataset"
	"irisvision/internal/model"
)

// DefaultSteps is the number of gradient steps applied per correction.
const DefaultSteps = 10

// Target is the label a correction trains toward: the rounded prediction
// when the reviewer confirms it, the other class when they reject it.
func Target(predicted float64, confirmed bool) int {
	label := dataset.ClassOf(predicted)
	if confirmed {
		return label
	}
	return 1 - label
}

// Correct applies steps gradient updates on the single normalized input and
// returns the new weights together with the new prediction for that input.
// w is taken by value; the caller decides whether to keep the result.
func Correct(input [model.Inputs]float64, w model.Weights, predicted float64, confirmed bool, lr float64, steps int) (model.Weights, float64) {
	if steps <= 0 {
		steps = DefaultSteps
	}
	target := float64(Target(predicted, confirmed))
	for i := 0; i < steps; i++ {
		w.Backprop(input, target, lr)
	}
	score := w.Predict(input)
	klog.V(1).Infof("correction confirmed=%t target=%.0f before=%.4f after=%.4f", confirmed, target, predicted, score)
	return w, score
}
