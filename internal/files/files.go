// Package files defines the byte buffers that flow through every transformation
// along with the size accounting reported back to callers.
package files

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/gabriel-vasile/mimetype"
)

// Common MIME types produced by the transformation engine.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWebP = "image/webp"
	MIMEGIF  = "image/gif"
	MIMEBMP  = "image/bmp"
	MIMETIFF = "image/tiff"
	MIMEHEIC = "image/heic"
	MIMEHEIF = "image/heif"
	MIMEPDF  = "application/pdf"
	MIMEZip  = "application/zip"
)

// Buffer is an immutable file payload. Operations never modify a Buffer they
// receive; they always return a new one.
type Buffer struct {
	Data []byte `json:"-"`
	MIME string `json:"mime"`
	Name string `json:"name"`
}

// New creates a Buffer, sniffing the MIME type from content when mime is empty.
func New(data []byte, mime, name string) Buffer {
	if mime == "" || mime == "application/octet-stream" {
		mime = Detect(data)
	}
	return Buffer{Data: data, MIME: mime, Name: name}
}

// Size returns the payload length in bytes.
func (b Buffer) Size() int64 {
	return int64(len(b.Data))
}

// Stem returns the file name without directory or extension.
func (b Buffer) Stem() string {
	return Stem(b.Name)
}

// Detect sniffs the MIME type of data, ignoring any parameters.
func Detect(data []byte) string {
	mt := mimetype.Detect(data)
	return strings.SplitN(mt.String(), ";", 2)[0]
}

// IsHEIC reports whether data or the given name identifies a HEIC/HEIF image.
func IsHEIC(data []byte, name string) bool {
	switch Detect(data) {
	case MIMEHEIC, MIMEHEIF, "image/heic-sequence", "image/heif-sequence":
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".heic" || ext == ".heif"
}

// Stem returns name without directory or extension.
func Stem(name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Savings returns round((original-output)/original*100). The result is
// negative when output grew and zero when original is zero.
func Savings(original, output int64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round(float64(original-output) / float64(original) * 100))
}

// HumanSize formats a byte count using decimal units, e.g. "1.5MB".
func HumanSize(size int64) string {
	return units.HumanSize(float64(size))
}
