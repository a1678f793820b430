package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisvision/internal/dataset"
	"irisvision/internal/session"
)

func TestParseFeedbackMode(t *testing.T) {
	for in, want := range map[string]feedbackMode{
		"":          feedbackNone,
		"none":      feedbackNone,
		"Correct":   feedbackCorrect,
		"incorrect": feedbackIncorrect,
		" ask ":     feedbackAsk,
	} {
		got, err := parseFeedbackMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := parseFeedbackMode("maybe")
	assert.Error(t, err)
}

func writeImage(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	require.NoError(t, imaging.Save(img, path))
}

func trained(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(dataset.Iris(), session.Options{Seed: 9, MaxEpochs: 30})
	require.NoError(t, err)
	s.Start()
	for {
		_, ok, err := s.Step()
		require.NoError(t, err)
		if !ok {
			return s
		}
	}
}

func TestClassifyImagesAsk(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), color.NRGBA{R: 90, G: 40, B: 200, A: 255})
	writeImage(t, filepath.Join(dir, "b.png"), color.NRGBA{R: 200, G: 180, B: 40, A: 255})
	writeImage(t, filepath.Join(dir, "c.png"), color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644))

	s := trained(t)
	out := &bytes.Buffer{}
	in := strings.NewReader("y\nn\n\n")
	require.NoError(t, classifyImages(context.Background(), s, dir, 0, feedbackAsk, in, out))

	assert.Equal(t, 2, s.Corrections())
	text := out.String()
	assert.Contains(t, text, "a.png: ")
	assert.Contains(t, text, "b.png: corrected output")
	assert.NotContains(t, text, "broken.png")
	assert.NotContains(t, text, "c.png: corrected")
}

func TestClassifyImagesFixedFeedback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.jpg")
	writeImage(t, path, color.NRGBA{R: 120, G: 80, B: 220, A: 255})

	s := trained(t)
	require.NoError(t, classifyImages(context.Background(), s, path, 4, feedbackIncorrect, strings.NewReader(""), &bytes.Buffer{}))
	assert.Equal(t, 1, s.Corrections())

	require.NoError(t, classifyImages(context.Background(), s, path, 0, feedbackNone, strings.NewReader(""), &bytes.Buffer{}))
	assert.Equal(t, 1, s.Corrections())
}

func TestClassifyImagesNotReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.png")
	writeImage(t, path, color.NRGBA{A: 255})
	s, err := session.New(dataset.Iris(), session.Options{Seed: 1})
	require.NoError(t, err)
	err = classifyImages(context.Background(), s, path, 0, feedbackNone, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "not ready")
}

func TestClassifyImagesEmptyDir(t *testing.T) {
	s := trained(t)
	err := classifyImages(context.Background(), s, t.TempDir(), 0, feedbackNone, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "no images")
}
