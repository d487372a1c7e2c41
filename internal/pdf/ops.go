package pdf

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
)

// Merge concatenates inputs in order, each keeping its own page order. The
// first input that fails to load aborts the merge and is named in the error.
func Merge(inputs [][]byte) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrEmptyDocument)
	}

	b := NewBuilder()
	for i, data := range inputs {
		doc, err := Load(data)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := b.AppendAll(doc); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	out, err := b.Build()
	if err != nil {
		return nil, err
	}
	return out.Save(SaveOptions{})
}

// Split builds a new document from the pages of data at the zero-based
// indices, keeping their order and any duplicates.
func Split(data []byte, indices []int) ([]byte, error) {
	doc, err := Load(data)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	if err := b.AppendPages(doc, indices); err != nil {
		return nil, err
	}

	out, err := b.Build()
	if err != nil {
		return nil, err
	}
	return out.Save(SaveOptions{})
}

// Quality selects a compression level.
type Quality string

// Compression levels. Only QualityLow changes page content; medium and high
// re-serialize with object streams.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// LowQualityScale is the page scale applied at QualityLow.
const LowQualityScale = 0.9

// ParseQuality parses a compression level. Empty input selects medium.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	switch q {
	case "":
		return QualityMedium, nil
	case QualityLow, QualityMedium, QualityHigh:
		return q, nil
	}
	return "", fmt.Errorf("%w: quality %q (must be low, medium, or high)", ErrInvalidOption, s)
}

// CompressResult reports the outcome of Compress.
type CompressResult struct {
	Output         []byte  `json:"-"`
	Quality        Quality `json:"quality"`
	OriginalSize   int64   `json:"original_size"`
	OutputSize     int64   `json:"output_size"`
	SavingsPercent int     `json:"savings_percent"`
}

// Compress re-serializes data with object streams, first shrinking every page
// to 90% at QualityLow. Embedded images are not recompressed, so savings may
// be zero or negative for already optimized files.
func Compress(data []byte, quality Quality) (*CompressResult, error) {
	if _, err := ParseQuality(string(quality)); err != nil {
		return nil, err
	}
	if quality == "" {
		quality = QualityMedium
	}

	doc, err := Load(data)
	if err != nil {
		return nil, err
	}

	if quality == QualityLow {
		if doc, err = doc.ScalePages(LowQualityScale); err != nil {
			return nil, err
		}
	}

	out, err := doc.Save(SaveOptions{UseObjectStreams: true})
	if err != nil {
		return nil, err
	}

	return &CompressResult{
		Output:         out,
		Quality:        quality,
		OriginalSize:   int64(len(data)),
		OutputSize:     int64(len(out)),
		SavingsPercent: files.Savings(int64(len(data)), int64(len(out))),
	}, nil
}

// DefaultFontSize is the watermark font size when none is given.
const DefaultFontSize = 48

// DefaultColor is the watermark fill when none is given.
var DefaultColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// WatermarkOptions describes a text watermark repeated on every page.
type WatermarkOptions struct {
	Text     string
	Opacity  float64
	Position anchor.Position
	FontSize int
	Color    color.Color
}

// Watermark draws opts.Text on every page, positioned against each page's own
// size so mixed page sizes are handled.
func Watermark(data []byte, opts WatermarkOptions) ([]byte, error) {
	if opts.Text == "" {
		return nil, fmt.Errorf("%w: watermark text is required", ErrInvalidOption)
	}
	if opts.Position == "" {
		opts.Position = anchor.Center
	}
	if err := opts.Position.Validate(); err != nil {
		return nil, err
	}
	if opts.FontSize == 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.Color == nil {
		opts.Color = DefaultColor
	}

	doc, err := Load(data)
	if err != nil {
		return nil, err
	}

	sizes, err := doc.PageSizes()
	if err != nil {
		return nil, err
	}

	strategy := anchor.PDF{Margin: anchor.PDFMargin}
	content := anchor.Size{
		W: TextWidth(opts.Text, opts.FontSize),
		H: float64(opts.FontSize),
	}

	stamps := make(map[int]TextStamp, len(sizes))
	for i, size := range sizes {
		pt := strategy.Text(opts.Position, anchor.Size{W: size.Width, H: size.Height}, content)
		stamps[i+1] = TextStamp{
			Text:     opts.Text,
			X:        pt.X,
			Y:        pt.Y,
			FontSize: opts.FontSize,
			Color:    opts.Color,
			Opacity:  opts.Opacity,
		}
	}

	out, err := doc.DrawText(stamps)
	if err != nil {
		return nil, err
	}
	return out.Save(SaveOptions{})
}
