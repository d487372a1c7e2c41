// Package raster decodes image buffers into pixel surfaces, transforms them,
// and re-encodes them to JPEG, PNG, WebP, GIF, BMP, or TIFF.
package raster

import "errors"

// Codec errors.
var (
	ErrDecode            = errors.New("failed to decode image")
	ErrEncode            = errors.New("failed to encode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidOption     = errors.New("invalid image option")
)
