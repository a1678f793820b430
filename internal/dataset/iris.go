package dataset

import "fmt"

// NumFeatures is the width of every feature vector.
const NumFeatures = 4

// Class labels.
const (
	Setosa     = 0
	Versicolor = 1
)

// Sample is one labeled row: sepal length, sepal width, petal length,
// petal width and a binary label.
type Sample struct {
	Features [NumFeatures]float64
	Label    int
}

var iris = []Sample{
	{[NumFeatures]float64{5.1, 3.5, 1.4, 0.2}, Setosa},
	{[NumFeatures]float64{4.9, 3.0, 1.4, 0.2}, Setosa},
	{[NumFeatures]float64{4.7, 3.2, 1.3, 0.2}, Setosa},
	{[NumFeatures]float64{4.6, 3.1, 1.5, 0.2}, Setosa},
	{[NumFeatures]float64{5.0, 3.6, 1.4, 0.2}, Setosa},
	{[NumFeatures]float64{5.4, 3.9, 1.7, 0.4}, Setosa},
	{[NumFeatures]float64{4.6, 3.4, 1.4, 0.3}, Setosa},
	{[NumFeatures]float64{5.0, 3.4, 1.5, 0.2}, Setosa},
	{[NumFeatures]float64{4.4, 2.9, 1.4, 0.2}, Setosa},
	{[NumFeatures]float64{4.9, 3.1, 1.5, 0.1}, Setosa},
	{[NumFeatures]float64{5.4, 3.7, 1.5, 0.2}, Setosa},
	{[NumFeatures]float64{4.8, 3.4, 1.6, 0.2}, Setosa},
	{[NumFeatures]float64{7.0, 3.2, 4.7, 1.4}, Versicolor},
	{[NumFeatures]float64{6.4, 3.2, 4.5, 1.5}, Versicolor},
	{[NumFeatures]float64{6.9, 3.1, 4.9, 1.5}, Versicolor},
	{[NumFeatures]float64{5.5, 2.3, 4.0, 1.3}, Versicolor},
	{[NumFeatures]float64{6.5, 2.8, 4.6, 1.5}, Versicolor},
	{[NumFeatures]float64{5.7, 2.8, 4.5, 1.3}, Versicolor},
	{[NumFeatures]float64{6.3, 3.3, 4.7, 1.6}, Versicolor},
	{[NumFeatures]float64{4.9, 2.4, 3.3, 1.0}, Versicolor},
	{[NumFeatures]float64{6.6, 2.9, 4.6, 1.3}, Versicolor},
	{[NumFeatures]float64{5.2, 2.7, 3.9, 1.4}, Versicolor},
	{[NumFeatures]float64{5.0, 2.0, 3.5, 1.0}, Versicolor},
	{[NumFeatures]float64{5.9, 3.0, 4.2, 1.5}, Versicolor},
}

// Iris returns a copy of the built-in 24 row setosa/versicolor dataset.
func Iris() []Sample {
	out := make([]Sample, len(iris))
	copy(out, iris)
	return out
}

// ClassName maps a label to the flower it stands for.
func ClassName(label int) string {
	switch label {
	case Setosa:
		return "setosa"
	case Versicolor:
		return "versicolor"
	default:
		return fmt.Sprintf("label(%d)", label)
	}
}

// ClassOf thresholds a sigmoid score into a label.
func ClassOf(score float64) int {
	if score < 0.5 {
		return Setosa
	}
	return Versicolor
}
