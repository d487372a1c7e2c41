package tools

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/JaimeStill/file-lab/internal/anchor"
	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/raster"
)

func (s *system) CompressImage(ctx context.Context, in files.Buffer, opts CompressOptions) (_ *CompressionResult, err error) {
	done := s.trace(ctx, "compress-image", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quality := qualityOr(opts.Quality, s.cfg.ImageQuality)
	format := opts.Format
	if format == "" {
		format = raster.JPEG
	}

	res, err := raster.Compress(in.Data, format, quality)
	if err != nil {
		return nil, err
	}

	out := files.New(res.Output, format.MIME(), outputName(in.Stem(), "_compressed", format.Ext()))
	return newResult(in, out), nil
}

func (s *system) ConvertFormat(ctx context.Context, in files.Buffer, opts ConvertOptions) (_ *ConversionResult, err error) {
	done := s.trace(ctx, "convert-format", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = raster.WebP
	}
	quality := qualityOr(opts.Quality, DefaultConvertQuality)
	if opts.Quality == nil && format == raster.JPEG && files.IsHEIC(in.Data, in.Name) {
		quality = HEICQuality
	}

	var surface *raster.Surface
	if files.IsHEIC(in.Data, in.Name) {
		surface, err = s.cfg.HEICDecoder(in.Data)
	} else {
		surface, err = raster.Decode(in.Data)
	}
	if err != nil {
		return nil, err
	}

	data, err := raster.Encode(surface, format, quality)
	if err != nil {
		return nil, err
	}

	out := files.New(data, format.MIME(), outputName(in.Stem(), "", format.Ext()))
	return newResult(in, out), nil
}

func (s *system) ResizeForTemplate(ctx context.Context, in files.Buffer, key string) (_ files.Buffer, err error) {
	done := s.trace(ctx, "resize-for-template", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return files.Buffer{}, err
	}

	t, err := FindTemplate(key)
	if err != nil {
		return files.Buffer{}, err
	}

	src, err := raster.Decode(in.Data)
	if err != nil {
		return files.Buffer{}, err
	}

	framed, err := raster.ResizeToFrame(src, t.Width, t.Height)
	if err != nil {
		return files.Buffer{}, err
	}

	data, err := raster.Encode(framed, raster.JPEG, TemplateQuality)
	if err != nil {
		return files.Buffer{}, err
	}

	return files.New(data, files.MIMEJPEG, outputName(in.Stem(), "_"+t.Slug, raster.JPEG.Ext())), nil
}

func (s *system) WatermarkImage(ctx context.Context, in files.Buffer, opts ImageWatermarkOptions) (_ files.Buffer, err error) {
	done := s.trace(ctx, "watermark-image", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return files.Buffer{}, err
	}

	hasText := strings.TrimSpace(opts.Text) != ""
	if hasText == (len(opts.Image) > 0) {
		return files.Buffer{}, fmt.Errorf("%w: exactly one of text or image watermark is required", ErrInvalidInput)
	}

	format := opts.Format
	if format == "" {
		format = raster.JPEG
	}

	margin := float64(anchor.RasterMargin)
	if opts.Preview {
		margin = anchor.PreviewMargin
	}

	src, err := raster.Decode(in.Data)
	if err != nil {
		return files.Buffer{}, err
	}

	var marked *raster.Surface
	if hasText {
		fontSize := opts.FontSize
		if fontSize <= 0 && opts.Preview {
			fontSize = max(20, float64(src.Width())/20)
		}
		marked, err = raster.OverlayText(src, raster.Watermark{
			Text:     opts.Text,
			Opacity:  opts.Opacity,
			Position: opts.Position,
			Color:    opts.Color,
			FontSize: fontSize,
			Margin:   margin,
		})
	} else {
		var mark *raster.Surface
		if mark, err = raster.Decode(opts.Image); err != nil {
			return files.Buffer{}, fmt.Errorf("watermark image: %w", err)
		}
		marked, err = raster.OverlayImage(src, mark, opts.Opacity, opts.Position, margin)
	}
	if err != nil {
		return files.Buffer{}, err
	}

	data, err := raster.Encode(marked, format, WatermarkQuality)
	if err != nil {
		return files.Buffer{}, err
	}

	return files.New(data, format.MIME(), outputName("watermarked_"+in.Stem(), "", format.Ext())), nil
}

func (s *system) ConvertHEICBatch(ctx context.Context, inputs []files.Buffer, q *float64) (_ files.Buffer, err error) {
	var total int64
	for _, in := range inputs {
		total += in.Size()
	}

	done := s.trace(ctx, "convert-heic-batch", total)
	defer func() { done(err) }()

	if len(inputs) == 0 {
		return files.Buffer{}, fmt.Errorf("%w: no files", ErrInvalidInput)
	}
	quality := qualityOr(q, HEICQuality)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool)

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return files.Buffer{}, err
		}

		data, err := s.heicToJPEG(in.Data, quality)
		if err != nil {
			return files.Buffer{}, fmt.Errorf("%w: file %d (%s): %w", ErrPartialFailure, i, in.Name, err)
		}

		w, err := zw.Create(uniqueName(seen, jpegName(in.Name, i)))
		if err != nil {
			return files.Buffer{}, fmt.Errorf("zip entry: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return files.Buffer{}, fmt.Errorf("zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return files.Buffer{}, fmt.Errorf("zip: %w", err)
	}

	return files.New(buf.Bytes(), files.MIMEZip, "converted_images.zip"), nil
}

func jpegName(name string, i int) string {
	stem := files.Stem(name)
	if stem == "" {
		stem = fmt.Sprintf("image_%d", i+1)
	}
	return stem + ".jpg"
}

func (s *system) heicToJPEG(data []byte, quality float64) ([]byte, error) {
	surface, err := s.cfg.HEICDecoder(data)
	if err != nil {
		return nil, err
	}
	return raster.Encode(surface, raster.JPEG, quality)
}

func qualityOr(q *float64, def float64) float64 {
	if q == nil {
		return def
	}
	return *q
}

// uniqueName returns name, or name with the first free _N suffix when an
// earlier entry already took it.
func uniqueName(seen map[string]bool, name string) string {
	candidate := name
	stem := strings.TrimSuffix(name, ".jpg")
	for n := 2; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d.jpg", stem, n)
	}
	seen[candidate] = true
	return candidate
}
