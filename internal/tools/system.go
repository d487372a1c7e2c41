package tools

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/heic"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/raster"
	"github.com/JaimeStill/file-lab/internal/thumbnails"
)

// System defines the file transformation operations. Every operation takes
// input buffers and returns new buffers; inputs are never modified.
type System interface {
	Handler(limits Limits) *Handler

	CompressImage(ctx context.Context, in files.Buffer, opts CompressOptions) (*CompressionResult, error)
	ConvertFormat(ctx context.Context, in files.Buffer, opts ConvertOptions) (*ConversionResult, error)
	ResizeForTemplate(ctx context.Context, in files.Buffer, template string) (files.Buffer, error)
	WatermarkImage(ctx context.Context, in files.Buffer, opts ImageWatermarkOptions) (files.Buffer, error)

	CompressPDF(ctx context.Context, in files.Buffer, quality pdf.Quality) (*CompressionResult, error)
	MergePDF(ctx context.Context, inputs []files.Buffer) (files.Buffer, error)
	SplitPDF(ctx context.Context, in files.Buffer, indices []int) (files.Buffer, error)
	ProtectPDF(ctx context.Context, in files.Buffer, opts ProtectOptions) (*ProtectResult, error)
	WatermarkPDF(ctx context.Context, in files.Buffer, opts pdf.WatermarkOptions) (files.Buffer, error)

	Thumbnails(ctx context.Context, in files.Buffer, maxWidth int) ([]thumbnails.Thumbnail, error)
	PDFInfo(ctx context.Context, in files.Buffer, password string) (*pdf.Info, error)
	ConvertHEICBatch(ctx context.Context, inputs []files.Buffer, quality *float64) (files.Buffer, error)
	Templates() []Template
}

// Config holds engine defaults.
type Config struct {
	Renderer       thumbnails.Renderer
	ThumbnailWidth int
	ImageQuality   float64
	ProtectMode    pdf.Mode
	Permissions    pdf.Permissions

	// HEICDecoder returns the first image of a HEIC/HEIF container.
	HEICDecoder func(data []byte) (*raster.Surface, error)
}

type system struct {
	cfg    Config
	logger *slog.Logger
}

// New creates the tools system. Zero config values fall back to the engine
// defaults; a nil Renderer selects MuPDF and a nil HEICDecoder selects
// heic.Decode.
func New(cfg Config, logger *slog.Logger) System {
	if cfg.Renderer == nil {
		cfg.Renderer = thumbnails.NewMuPDF()
	}
	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = thumbnails.DefaultWidth
	}
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		cfg.ImageQuality = DefaultCompressQuality
	}
	if cfg.ProtectMode == "" {
		cfg.ProtectMode = pdf.ModeEncrypt
	}
	if cfg.Permissions == "" {
		cfg.Permissions = pdf.PermissionsNone
	}
	if cfg.HEICDecoder == nil {
		cfg.HEICDecoder = heic.Decode
	}

	return &system{
		cfg:    cfg,
		logger: logger.With("system", "tools"),
	}
}

func (s *system) Handler(limits Limits) *Handler {
	return NewHandler(s, s.logger, limits, s.cfg)
}

func (s *system) Templates() []Template {
	return Templates()
}
