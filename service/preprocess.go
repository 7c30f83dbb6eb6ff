package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"
)

// ErrImageDecode is returned when the uploaded bytes are not a decodable
// PNG or JPEG image.
var ErrImageDecode = errors.New("cannot decode image")

const (
	maxImageBytes = 2 * 1024 * 1024
	maxDimension  = 4000
	targetLongest = 3000
	jpegQuality   = 90
)

// PreprocessImage normalizes a page image before it is sent to the oracle.
// Oversized images (more than 2MB or a side longer than 4000px) are
// downscaled so their longest side is 3000px; images are never upscaled.
// The result is always re-encoded as JPEG.
func PreprocessImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}

	if len(data) > maxImageBytes || longest > maxDimension {
		scale := float64(targetLongest) / float64(longest)
		if scale < 1 {
			nw := int(math.Round(float64(w) * scale))
			nh := int(math.Round(float64(h) * scale))
			if nw < 1 {
				nw = 1
			}
			if nh < 1 {
				nh = 1
			}
			dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
			draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
			img = dst
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
