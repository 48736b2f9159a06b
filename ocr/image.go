package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

var (
	// ErrUnsupportedImage is returned when an image cannot be decoded.
	ErrUnsupportedImage = errors.New("ocr: unsupported image")

	// ErrOCRNotEnabled is returned when OCR functions are called but OCR
	// support was not compiled in. Rebuild with -tags ocr to enable it.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
)

// MinWidth is the width below which scans are upscaled before recognition.
const MinWidth = 1000

const maxUpscale = 4

// PrepareImage decodes a PNG, JPEG, GIF, TIFF, BMP or WebP image, converts it
// to grayscale and upscales narrow scans by an integer factor of at most 4.
// The result is PNG encoded.
func PrepareImage(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := src.Bounds()
	factor := 1
	if w := b.Dx(); w > 0 && w < MinWidth {
		factor = min((MinWidth+w-1)/w, maxUpscale)
	}

	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	if factor == 1 {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
