package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

const (
	jpegQuality = 82

	DefaultMaxPixels = 40_000_000
)

// Size is a named rendition bounded by a box. Images already inside the box get no
// rendition of that size.
type Size struct {
	Name      string
	MaxWidth  int
	MaxHeight int
}

var DefaultSizes = []Size{
	{Name: "thumbnail", MaxWidth: 150, MaxHeight: 150},
	{Name: "medium", MaxWidth: 300, MaxHeight: 300},
	{Name: "large", MaxWidth: 1024, MaxHeight: 1024},
}

type Rendition struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// DetectType sniffs the content type from the data itself.
func DetectType(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if allowed[m.String()] {
			return m.String(), nil
		}
	}
	return "", fmt.Errorf("%s: %w", mt.String(), ErrUnsupportedImage)
}

func fit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	if w*maxH > h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

// Generate decodes the image and produces a JPEG for every size smaller than the
// original. Images above maxPixels are rejected before the pixel data is decoded.
func Generate(data []byte, sizes []Size, maxPixels int) ([]Rendition, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%dx%d exceeds %d pixels: %w", cfg.Width, cfg.Height, maxPixels, ErrUnsupportedImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var out []Rendition
	for _, size := range sizes {
		nw, nh := fit(w, h, size.MaxWidth, size.MaxHeight)
		if nw == w && nh == h {
			continue
		}

		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode %s rendition: %w", size.Name, err)
		}
		out = append(out, Rendition{Name: size.Name, Data: buf.Bytes(), Width: nw, Height: nh})
	}
	return out, nil
}
