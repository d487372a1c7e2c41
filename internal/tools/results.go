package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/raster"
)

// Fixed output qualities.
const (
	DefaultCompressQuality = 0.8
	DefaultConvertQuality  = 0.9
	HEICQuality            = 0.9
	TemplateQuality        = 0.95
	WatermarkQuality       = 0.95
)

// CompressionResult reports a transformation that may shrink its input.
type CompressionResult struct {
	files.Buffer
	OriginalSize   int64 `json:"original_size"`
	OutputSize     int64 `json:"output_size"`
	SavingsPercent int   `json:"savings_percent"`
}

// ConversionResult has the same shape as CompressionResult.
type ConversionResult = CompressionResult

func newResult(in files.Buffer, out files.Buffer) *CompressionResult {
	return &CompressionResult{
		Buffer:         out,
		OriginalSize:   in.Size(),
		OutputSize:     out.Size(),
		SavingsPercent: files.Savings(in.Size(), out.Size()),
	}
}

// CompressOptions configures CompressImage. A nil Quality selects the
// configured default and an empty Format selects JPEG.
type CompressOptions struct {
	Quality *float64
	Format  raster.Format
}

// ConvertOptions configures ConvertFormat. An empty Format selects WebP and
// a nil Quality selects 0.9.
type ConvertOptions struct {
	Quality *float64
	Format  raster.Format
}

// ImageWatermarkOptions configures WatermarkImage. Exactly one of Text or
// Image must be set.
type ImageWatermarkOptions struct {
	Text     string
	Image    []byte
	Opacity  float64
	Position anchor.Position
	Color    string
	FontSize float64
	// Format of the output. Empty selects JPEG.
	Format raster.Format
	// Preview uses the tighter preview margin.
	Preview bool
}

// ProtectOptions configures ProtectPDF. An empty Mode or Permissions selects
// the configured default.
type ProtectOptions struct {
	Mode          pdf.Mode
	UserPassword  string
	OwnerPassword string
	Permissions   pdf.Permissions
}

// ProtectResult pairs the protected document with a description of what was
// applied.
type ProtectResult struct {
	files.Buffer
	Info pdf.ProtectionInfo `json:"info"`
}

func outputName(stem, suffix, ext string) string {
	if stem == "" {
		stem = "file"
	}
	return fmt.Sprintf("%s%s.%s", stem, suffix, ext)
}

func (s *system) trace(ctx context.Context, op string, in int64) func(error) {
	start := time.Now()
	s.logger.DebugContext(ctx, "operation started", "op", op, "input_size", in)
	return func(err error) {
		if err != nil {
			s.logger.DebugContext(ctx, "operation failed", "op", op, "error", err, "duration", time.Since(start))
			return
		}
		s.logger.DebugContext(ctx, "operation finished", "op", op, "input_size", in, "duration", time.Since(start))
	}
}
