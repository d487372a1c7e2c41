package raster

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/file-lab/internal/files"
)

// Format identifies an encodable raster format.
type Format string

// Supported output formats.
const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	WebP Format = "webp"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name, file extension, or MIME type.
func ParseFormat(s string) (Format, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, ".")
	v = strings.TrimPrefix(v, "image/")

	switch v {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatOf maps a MIME type to its format, defaulting to JPEG for
// anything that cannot be re-encoded in kind.
func FormatOf(mime string) Format {
	if f, err := ParseFormat(mime); err == nil {
		return f
	}
	return JPEG
}

// MIME returns the media type written for the format.
func (f Format) MIME() string {
	switch f {
	case PNG:
		return files.MIMEPNG
	case WebP:
		return files.MIMEWebP
	case GIF:
		return files.MIMEGIF
	case BMP:
		return files.MIMEBMP
	case TIFF:
		return files.MIMETIFF
	default:
		return files.MIMEJPEG
	}
}

// Ext returns the conventional file extension without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Lossy reports whether quality affects the encoded output.
func (f Format) Lossy() bool {
	return f == JPEG || f == WebP
}
