// Package model holds the 4-3-1 sigmoid network: its weights, forward pass
// and the single-example gradient step shared by training and correction.
package model

// Classifier scores a normalized feature vector.
type Classifier interface {
	Predict(input [Inputs]float64) float64
}

var _ Classifier = Weights{}
