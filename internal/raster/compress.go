package raster

import (
	"github.com/JaimeStill/file-lab/internal/files"
)

// Result reports the outcome of a re-encode.
type Result struct {
	Output         []byte `json:"-"`
	Format         Format `json:"format"`
	OriginalSize   int64  `json:"original_size"`
	OutputSize     int64  `json:"output_size"`
	SavingsPercent int    `json:"savings_percent"`
}

// Compress decodes data and re-encodes it as format at quality. The original
// buffer is never returned in place of a failed encode.
func Compress(data []byte, format Format, quality float64) (*Result, error) {
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}

	out, err := Encode(s, format, quality)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:         out,
		Format:         format,
		OriginalSize:   int64(len(data)),
		OutputSize:     int64(len(out)),
		SavingsPercent: files.Savings(int64(len(data)), int64(len(out))),
	}, nil
}
