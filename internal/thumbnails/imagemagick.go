package thumbnails

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	dcimage "github.com/JaimeStill/document-context/pkg/image"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/JaimeStill/file-lab/internal/pdf"
	"github.com/JaimeStill/file-lab/internal/raster"
	"github.com/JaimeStill/file-lab/internal/storage"
)

// minDensity is the lowest rasterization density passed to ImageMagick.
// Pages are rendered at least this sharp and downsampled afterwards.
const minDensity = 72

type pageExtractor interface {
	ExtractPage(pageNum int) (document.Page, error)
	io.Closer
}

type imageMagick struct {
	store storage.System
}

// NewImageMagick returns a renderer that shells out to ImageMagick through
// document-context. Documents are staged in store for the session lifetime.
func NewImageMagick(store storage.System) Renderer {
	return &imageMagick{store: store}
}

func (r *imageMagick) Name() string {
	return ImageMagick
}

func (r *imageMagick) Open(ctx context.Context, data []byte) (Session, error) {
	doc, err := pdf.Load(data)
	if err != nil {
		return nil, err
	}

	sizes, err := doc.PageSizes()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("thumbnails/%s.pdf", uuid.New())
	if err := r.store.Store(ctx, key, data); err != nil {
		return nil, fmt.Errorf("stage document: %w", err)
	}

	path, err := r.store.Path(ctx, key)
	if err != nil {
		r.store.Delete(ctx, key)
		return nil, fmt.Errorf("stage document: %w", err)
	}

	extractor, err := document.OpenPDF(path)
	if err != nil {
		r.store.Delete(ctx, key)
		return nil, err
	}

	return &imageMagickSession{
		ctx:       ctx,
		store:     r.store,
		key:       key,
		sizes:     sizes,
		extractor: extractor,
	}, nil
}

type imageMagickSession struct {
	ctx       context.Context
	store     storage.System
	key       string
	sizes     []pdf.Size
	extractor pageExtractor
}

func (s *imageMagickSession) PageCount() int {
	return len(s.sizes)
}

func (s *imageMagickSession) PageWidth(n int) (float64, error) {
	if n < 0 || n >= len(s.sizes) {
		return 0, fmt.Errorf("page %d out of range", n+1)
	}
	return s.sizes[n].Width, nil
}

func (s *imageMagickSession) Render(n int, scale float64) (image.Image, error) {
	width, err := s.PageWidth(n)
	if err != nil {
		return nil, err
	}

	density := max(minDensity, int(math.Ceil(pointsPerInch*scale)))
	renderer, err := dcimage.NewImageMagickRenderer(config.ImageConfig{
		Format:  string(document.JPEG),
		DPI:     density,
		Quality: 90,
		Options: make(map[string]any),
	})
	if err != nil {
		return nil, err
	}

	page, err := s.extractor.ExtractPage(n + 1)
	if err != nil {
		return nil, err
	}

	data, err := page.ToImage(renderer, nil)
	if err != nil {
		return nil, err
	}

	surface, err := raster.Decode(data)
	if err != nil {
		return nil, err
	}

	target := max(1, int(math.Round(width*scale)))
	if surface.Width() == target {
		return surface.Image(), nil
	}
	return imaging.Resize(surface.Image(), target, 0, imaging.Lanczos), nil
}

func (s *imageMagickSession) Close() error {
	err := s.extractor.Close()
	if derr := s.store.Delete(context.WithoutCancel(s.ctx), s.key); derr != nil && err == nil {
		err = derr
	}
	return err
}
