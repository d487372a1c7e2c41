package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Surface is a fully decoded image with positive dimensions.
// Operations return new surfaces and never modify their inputs.
type Surface struct {
	img *image.NRGBA
}

// NewSurface wraps img as a surface, copying its pixels.
func NewSurface(img image.Image) (*Surface, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrEncode, b.Dx(), b.Dy())
	}
	return &Surface{img: imaging.Clone(img)}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.img.Bounds().Dy()
}

// Image exposes the underlying pixels for reading.
func (s *Surface) Image() image.Image {
	return s.img
}

// Decode parses a JPEG, PNG, WebP, GIF, BMP, or TIFF buffer. EXIF orientation
// is applied. Empty, truncated, or unrecognized input fails with ErrDecode.
func Decode(data []byte) (*Surface, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrDecode)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrDecode, b.Dx(), b.Dy())
	}

	return &Surface{img: imaging.Clone(img)}, nil
}

// Encode writes the surface in format. quality in [0,1] is mapped to the
// 1..100 encoder scale for JPEG and WebP and ignored otherwise. JPEG output is
// flattened onto white since the format has no alpha channel.
func Encode(s *Surface, format Format, quality float64) ([]byte, error) {
	if s == nil || s.img == nil || s.Width() <= 0 || s.Height() <= 0 {
		return nil, fmt.Errorf("%w: empty surface", ErrEncode)
	}
	if math.IsNaN(quality) || quality < 0 || quality > 1 {
		return nil, fmt.Errorf("%w: quality %v outside [0,1]", ErrEncode, quality)
	}

	q := max(1, int(math.Round(quality*100)))
	var buf bytes.Buffer
	var err error

	switch format {
	case JPEG:
		flat := imaging.New(s.Width(), s.Height(), color.White)
		flat = imaging.Overlay(flat, s.img, image.Point{}, 1.0)
		err = imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(q))
	case WebP:
		err = webp.Encode(&buf, s.img, &webp.Options{Quality: float32(q)})
	case PNG:
		err = imaging.Encode(&buf, s.img, imaging.PNG)
	case GIF:
		err = imaging.Encode(&buf, s.img, imaging.GIF)
	case BMP:
		err = imaging.Encode(&buf, s.img, imaging.BMP)
	case TIFF:
		err = imaging.Encode(&buf, s.img, imaging.TIFF)
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrEncode, ErrUnsupportedFormat, string(format))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
