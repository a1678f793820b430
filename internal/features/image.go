package features

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Pixels flattens img into non-premultiplied RGBA bytes, row by row, the
// layout Extract expects.
func Pixels(img image.Image) []byte {
	return imaging.Clone(img).Pix
}

// Decode parses an encoded image. When maxSide > 0 the image is shrunk to
// fit a maxSide square first, keeping its aspect ratio.
func Decode(raw []byte, maxSide int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return pixelsOf(img, maxSide)
}

// Load reads and decodes the image file at path, see Decode.
func Load(path string, maxSide int) ([]byte, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "open image %q", path)
	}
	return pixelsOf(img, maxSide)
}

func pixelsOf(img image.Image, maxSide int) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, errors.New("empty image")
	}
	if maxSide > 0 && (bounds.Dx() > maxSide || bounds.Dy() > maxSide) {
		return imaging.Fit(img, maxSide, maxSide, imaging.Box).Pix, nil
	}
	return Pixels(img), nil
}
