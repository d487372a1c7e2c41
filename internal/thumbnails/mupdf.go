package thumbnails

import (
	"context"
	"image"

	"github.com/gen2brain/go-fitz"
)

// pointsPerInch is the resolution at which MuPDF page bounds are reported.
const pointsPerInch = 72

type mupdf struct{}

// NewMuPDF returns a renderer that rasterizes documents in memory with MuPDF.
func NewMuPDF() Renderer {
	return mupdf{}
}

func (mupdf) Name() string {
	return MuPDF
}

func (mupdf) Open(ctx context.Context, data []byte) (Session, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &mupdfSession{doc: doc}, nil
}

type mupdfSession struct {
	doc *fitz.Document
}

func (s *mupdfSession) PageCount() int {
	return s.doc.NumPage()
}

func (s *mupdfSession) PageWidth(n int) (float64, error) {
	bounds, err := s.doc.Bound(n)
	if err != nil {
		return 0, err
	}
	return float64(bounds.Dx()), nil
}

func (s *mupdfSession) Render(n int, scale float64) (image.Image, error) {
	return s.doc.ImageDPI(n, pointsPerInch*scale)
}

func (s *mupdfSession) Close() error {
	return s.doc.Close()
}
