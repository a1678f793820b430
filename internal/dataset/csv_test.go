package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIrisShape(t *testing.T) {
	samples := Iris()
	require.Len(t, samples, 24)
	counts := map[int]int{}
	for _, s := range samples {
		counts[s.Label]++
	}
	assert.Equal(t, 12, counts[Setosa])
	assert.Equal(t, 12, counts[Versicolor])

	// Callers get their own copy.
	samples[0].Features[0] = 100
	assert.Equal(t, 5.1, Iris()[0].Features[0])
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, Setosa, ClassOf(0.49))
	assert.Equal(t, Versicolor, ClassOf(0.5))
	assert.Equal(t, "versicolor", ClassName(ClassOf(0.9)))
	assert.Equal(t, "label(7)", ClassName(7))
}

func TestReadCSV(t *testing.T) {
	input := `sepal_length,sepal_width,petal_length,petal_width,label
# setosa
5.1, 3.5, 1.4, 0.2, 0

7.0,3.2,4.7,1.4,1
`
	samples, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, Sample{Features: [NumFeatures]float64{5.1, 3.5, 1.4, 0.2}, Label: 0}, samples[0])
	assert.Equal(t, 1, samples[1].Label)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2,3,4,2\n"))
	require.ErrorContains(t, err, "label must be 0 or 1")

	_, err = ReadCSV(strings.NewReader("1,2,3,4\n"))
	require.ErrorContains(t, err, "want 5 fields")

	_, err = ReadCSV(strings.NewReader("1,2,3,4,0\n1,x,3,4,0\n"))
	require.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader("# nothing\n"))
	require.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("4.6,3.1,1.5,0.2,0\n"), 0o644))
	samples, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
