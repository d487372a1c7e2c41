// Package heic converts HEIC/HEIF containers to JPEG.
//
// Decoding is delegated to libheif. The default build uses a decoder that
// needs no cgo; the "heic" build tag links the system libheif instead.
package heic

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/file-lab/internal/raster"
)

// ErrUnsupportedFormat is returned when data is not a readable HEIC/HEIF
// container or the decoder fails.
var ErrUnsupportedFormat = errors.New("unsupported heic data")

// Decode returns the first image in data as a surface. Multi-image
// containers such as bursts yield only their first image.
func Decode(data []byte) (*raster.Surface, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrUnsupportedFormat)
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	s, err := raster.NewSurface(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return s, nil
}

// ToJPEG decodes the first image in data and encodes it as JPEG at quality.
func ToJPEG(data []byte, quality float64) ([]byte, error) {
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return raster.Encode(s, raster.JPEG, quality)
}
