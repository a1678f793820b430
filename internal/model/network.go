package model

import (
	"math"
	"math/rand"

	"irisvision/internal/dataset"
)

// Layer sizes of the fixed topology.
const (
	Inputs = dataset.NumFeatures
	Hidden = 3
)

// Weights is the full parameter set of the 4-3-1 network. All fields are
// arrays, so assigning a Weights value copies every parameter.
type Weights struct {
	// Hidden[i][j] connects input i to hidden unit j.
	Hidden     [Inputs][Hidden]float64
	HiddenBias [Hidden]float64
	Output     [Hidden]float64
	OutputBias float64
}

// NewWeights draws every weight and bias uniformly from [-1, 1].
func NewWeights(rng *rand.Rand) Weights {
	var w Weights
	for i := range w.Hidden {
		for j := range w.Hidden[i] {
			w.Hidden[i][j] = uniform(rng)
		}
	}
	for j := range w.HiddenBias {
		w.HiddenBias[j] = uniform(rng)
	}
	for j := range w.Output {
		w.Output[j] = uniform(rng)
	}
	w.OutputBias = uniform(rng)
	return w
}

func uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

// Forward evaluates the network on an already normalized input.
func (w Weights) Forward(input [Inputs]float64) (hidden [Hidden]float64, out float64) {
	for j := 0; j < Hidden; j++ {
		sum := w.HiddenBias[j]
		for i := 0; i < Inputs; i++ {
			sum += input[i] * w.Hidden[i][j]
		}
		hidden[j] = Sigmoid(sum)
	}
	sum := w.OutputBias
	for j := 0; j < Hidden; j++ {
		sum += hidden[j] * w.Output[j]
	}
	return hidden, Sigmoid(sum)
}

// Predict returns only the output score of Forward.
func (w Weights) Predict(input [Inputs]float64) float64 {
	_, out := w.Forward(input)
	return out
}

// Backprop runs one forward pass and one in-place gradient step toward
// target. It returns the output measured before the update.
func (w *Weights) Backprop(input [Inputs]float64, target, lr float64) float64 {
	hidden, out := w.Forward(input)
	outGrad := (target - out) * SigmoidDerivative(out)

	// Hidden gradients read the output weights before they move.
	var hiddenGrad [Hidden]float64
	for j := 0; j < Hidden; j++ {
		hiddenGrad[j] = outGrad * w.Output[j] * SigmoidDerivative(hidden[j])
	}

	for j := 0; j < Hidden; j++ {
		w.Output[j] += lr * outGrad * hidden[j]
	}
	w.OutputBias += lr * outGrad
	for i := 0; i < Inputs; i++ {
		for j := 0; j < Hidden; j++ {
			w.Hidden[i][j] += lr * hiddenGrad[j] * input[i]
		}
	}
	for j := 0; j < Hidden; j++ {
		w.HiddenBias[j] += lr * hiddenGrad[j]
	}
	return out
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative takes an activation a = Sigmoid(x), not x itself.
func SigmoidDerivative(a float64) float64 {
	return a * (1 - a)
}
