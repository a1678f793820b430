// Package features reduces raw pixels to the four numbers the network reads.
//
// Each feature is rescaled into roughly the range of the matching Iris
// column so that dataset statistics stay meaningful for image input:
//
//	f1 = avgBlue/255*7 + 4
//	f2 = avgBrightness/255*2 + 2
//	f3 = purpleFraction*5 + 1
//	f4 = saturation*2
package features

import (
	"github.com/pkg/errors"

	"irisvision/internal/dataset"
)

// Vector is an unlabeled feature vector.
type Vector [dataset.NumFeatures]float64

// ErrBadBuffer is returned for an empty buffer or one that is not made of
// whole 4 byte pixels.
var ErrBadBuffer = errors.New("features: pixel buffer must hold whole RGBA pixels")

// Extract computes the feature vector of an RGBA buffer, 4 bytes per pixel.
// Alpha is ignored.
func Extract(pix []byte) (Vector, error) {
	if len(pix) == 0 || len(pix)%4 != 0 {
		return Vector{}, errors.Wrapf(ErrBadBuffer, "got %d bytes", len(pix))
	}
	var sumR, sumG, sumB, sumBrightness float64
	purple := 0
	for i := 0; i < len(pix); i += 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		fr, fg, fb := float64(r), float64(g), float64(b)
		sumR += fr
		sumG += fg
		sumB += fb
		sumBrightness += (fr + fg + fb) / 3
		if b > r && b > g && b > 100 {
			purple++
		}
	}

	n := float64(len(pix) / 4)
	avgR, avgG, avgB := sumR/n, sumG/n, sumB/n
	avgBrightness := sumBrightness / n

	hi := max(avgR, avgG, avgB)
	lo := min(avgR, avgG, avgB)
	saturation := 0.0
	if hi > 0 {
		saturation = (hi - lo) / hi
	}

	return Vector{
		avgB/255*7 + 4,
		avgBrightness/255*2 + 2,
		float64(purple)/n*5 + 1,
		saturation * 2,
	}, nil
}
