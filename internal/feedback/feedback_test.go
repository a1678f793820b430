package feedback

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisvision/internal/model"
)

func TestTarget(t *testing.T) {
	assert.Equal(t, 0, Target(0.2, true))
	assert.Equal(t, 1, Target(0.2, false))
	assert.Equal(t, 1, Target(0.5, true))
	assert.Equal(t, 0, Target(0.5, false))
	assert.Equal(t, 0, Target(0.93, false))
}

func TestCorrectIncorrectCrossesTowardOtherSide(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		w := model.NewWeights(rng)
		input := [model.Inputs]float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		before := w.Predict(input)

		_, after := Correct(input, w, before, false, 0.1, DefaultSteps)
		if before >= 0.5 {
			require.Less(t, after, before, "trial %d", trial)
		} else {
			require.Greater(t, after, before, "trial %d", trial)
		}
	}
}

func TestCorrectConfirmedReinforces(t *testing.T) {
	w := model.NewWeights(rand.New(rand.NewSource(2)))
	input := [model.Inputs]float64{1, -0.5, 0.3, 2}
	before := w.Predict(input)
	_, after := Correct(input, w, before, true, 0.1, DefaultSteps)
	if before >= 0.5 {
		assert.Greater(t, after, before)
	} else {
		assert.Less(t, after, before)
	}
}

func TestCorrectAppliesExactSteps(t *testing.T) {
	w := model.NewWeights(rand.New(rand.NewSource(4)))
	input := [model.Inputs]float64{0.1, 0.2, 0.3, 0.4}
	before := w.Predict(input)

	want := w
	target := float64(Target(before, false))
	for i := 0; i < 10; i++ {
		want.Backprop(input, target, 0.2)
	}

	got, score := Correct(input, w, before, false, 0.2, 10)
	assert.Equal(t, want, got)
	assert.Equal(t, want.Predict(input), score)
	assert.NotEqual(t, w, got, "input weights are copied, not mutated")
}

func TestCorrectDefaultsSteps(t *testing.T) {
	w := model.NewWeights(rand.New(rand.NewSource(4)))
	input := [model.Inputs]float64{0.1, 0.2, 0.3, 0.4}
	a, _ := Correct(input, w, 0.7, false, 0.1, 0)
	b, _ := Correct(input, w, 0.7, false, 0.1, DefaultSteps)
	assert.Equal(t, b, a)
}
