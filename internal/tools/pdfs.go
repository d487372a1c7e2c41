package tools

import (
	"context"
	"fmt"

	"github.com/JaimeStill/file-lab/internal/files"
	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/thumbnails"
)

func (s *system) CompressPDF(ctx context.Context, in files.Buffer, quality pdf.Quality) (_ *CompressionResult, err error) {
	done := s.trace(ctx, "compress-pdf", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := pdf.Compress(in.Data, quality)
	if err != nil {
		return nil, err
	}

	out := files.New(res.Output, files.MIMEPDF, outputName(in.Stem(), "_compressed", "pdf"))
	return newResult(in, out), nil
}

func (s *system) MergePDF(ctx context.Context, inputs []files.Buffer) (_ files.Buffer, err error) {
	var total int64
	data := make([][]byte, len(inputs))
	for i, in := range inputs {
		total += in.Size()
		data[i] = in.Data
	}

	done := s.trace(ctx, "merge-pdf", total)
	defer func() { done(err) }()

	if len(inputs) < 2 {
		return files.Buffer{}, fmt.Errorf("%w: merge requires at least two files, got %d", ErrInvalidInput, len(inputs))
	}
	if err := ctx.Err(); err != nil {
		return files.Buffer{}, err
	}

	out, err := pdf.Merge(data)
	if err != nil {
		return files.Buffer{}, fmt.Errorf("%w: %w", ErrPartialFailure, err)
	}

	return files.New(out, files.MIMEPDF, "merged.pdf"), nil
}

func (s *system) SplitPDF(ctx context.Context, in files.Buffer, indices []int) (_ files.Buffer, err error) {
	done := s.trace(ctx, "split-pdf", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return files.Buffer{}, err
	}

	out, err := pdf.Split(in.Data, indices)
	if err != nil {
		return files.Buffer{}, err
	}

	return files.New(out, files.MIMEPDF, outputName(in.Stem(), "_pages", "pdf")), nil
}

func (s *system) ProtectPDF(ctx context.Context, in files.Buffer, opts ProtectOptions) (_ *ProtectResult, err error) {
	done := s.trace(ctx, "protect-pdf", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = s.cfg.ProtectMode
	}
	perms := opts.Permissions
	if perms == "" {
		perms = s.cfg.Permissions
	}

	res, err := pdf.Protect(in.Data, pdf.ProtectOptions{
		Mode:          mode,
		UserPassword:  opts.UserPassword,
		OwnerPassword: opts.OwnerPassword,
		Permissions:   perms,
	})
	if err != nil {
		return nil, err
	}

	if !res.Info.Encrypted {
		s.logger.WarnContext(ctx, "pdf returned without encryption", "mode", res.Info.Mode)
	}

	name := in.Name
	if name == "" {
		name = "document.pdf"
	}

	return &ProtectResult{
		Buffer: files.New(res.Output, files.MIMEPDF, "protected_"+name),
		Info:   res.Info,
	}, nil
}

func (s *system) WatermarkPDF(ctx context.Context, in files.Buffer, opts pdf.WatermarkOptions) (_ files.Buffer, err error) {
	done := s.trace(ctx, "watermark-pdf", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return files.Buffer{}, err
	}

	out, err := pdf.Watermark(in.Data, opts)
	if err != nil {
		return files.Buffer{}, err
	}

	name := in.Name
	if name == "" {
		name = "document.pdf"
	}
	return files.New(out, files.MIMEPDF, "watermarked_"+name), nil
}

func (s *system) Thumbnails(ctx context.Context, in files.Buffer, maxWidth int) (_ []thumbnails.Thumbnail, err error) {
	done := s.trace(ctx, "thumbnails", in.Size())
	defer func() { done(err) }()

	if maxWidth == 0 {
		maxWidth = s.cfg.ThumbnailWidth
	}
	return thumbnails.Generate(ctx, s.cfg.Renderer, in.Data, maxWidth)
}

func (s *system) PDFInfo(ctx context.Context, in files.Buffer, password string) (_ *pdf.Info, err error) {
	done := s.trace(ctx, "pdf-info", in.Size())
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := pdf.LoadWithPassword(in.Data, password)
	if err != nil {
		return nil, err
	}
	return doc.Info()
}
