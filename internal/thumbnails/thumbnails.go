// Package thumbnails rasterizes every page of a PDF into small JPEG previews.
//
// Rendering is delegated to a Renderer backend. MuPDF renders from memory;
// ImageMagick reads a temporary copy of the document from the scratch
// workspace.
package thumbnails

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/JaimeStill/file-lab/internal/raster"
	"github.com/JaimeStill/file-lab/internal/storage"
)

// Thumbnail errors.
var (
	ErrParse           = errors.New("failed to open pdf")
	ErrInvalidWidth    = errors.New("invalid thumbnail width")
	ErrRenderFailed    = errors.New("failed to render page")
	ErrUnknownRenderer = errors.New("unknown renderer")
)

// Hint is appended to open failures.
const Hint = "the file may be corrupted or password protected"

// Defaults applied by Generate.
const (
	DefaultWidth = 200
	Quality      = 0.8
)

// Renderer names.
const (
	MuPDF       = "mupdf"
	ImageMagick = "imagemagick"
)

// Renderer opens documents for rasterization.
type Renderer interface {
	Name() string
	Open(ctx context.Context, data []byte) (Session, error)
}

// Session is an open document. Page numbers are zero-based.
type Session interface {
	PageCount() int
	// PageWidth returns the page width in points at scale 1.
	PageWidth(n int) (float64, error)
	Render(n int, scale float64) (image.Image, error)
	Close() error
}

// Thumbnail is one rendered page.
type Thumbnail struct {
	PageNumber int    `json:"page_number"`
	DataURI    string `json:"data_uri"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// New returns the renderer registered under name. The ImageMagick renderer
// stages documents in store.
func New(name string, store storage.System) (Renderer, error) {
	switch strings.ToLower(name) {
	case MuPDF:
		return NewMuPDF(), nil
	case ImageMagick:
		if store == nil {
			return nil, fmt.Errorf("%w: %s requires a scratch store", ErrUnknownRenderer, name)
		}
		return NewImageMagick(store), nil
	}
	return nil, fmt.Errorf("%w: %q (must be mupdf or imagemagick)", ErrUnknownRenderer, name)
}

// Generate renders every page of data in order so that each thumbnail is
// maxWidth pixels wide. The session is closed on every path and ctx is
// checked between pages.
func Generate(ctx context.Context, r Renderer, data []byte, maxWidth int) ([]Thumbnail, error) {
	if maxWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, maxWidth)
	}

	s, err := r.Open(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (%s)", ErrParse, err, Hint)
	}
	defer s.Close()

	n := s.PageCount()
	thumbs := make([]Thumbnail, 0, n)

	for i := range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		thumb, err := render(s, i, maxWidth)
		if err != nil {
			return nil, err
		}
		thumbs = append(thumbs, thumb)
	}

	return thumbs, nil
}

func render(s Session, page, maxWidth int) (Thumbnail, error) {
	width, err := s.PageWidth(page)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, page+1, err)
	}
	if width <= 0 {
		return Thumbnail{}, fmt.Errorf("%w: page %d has no width", ErrRenderFailed, page+1)
	}

	img, err := s.Render(page, float64(maxWidth)/width)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, page+1, err)
	}

	surface, err := raster.NewSurface(img)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, page+1, err)
	}

	out, err := raster.Encode(surface, raster.JPEG, Quality)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, page+1, err)
	}

	return Thumbnail{
		PageNumber: page + 1,
		DataURI:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out),
		Width:      surface.Width(),
		Height:     surface.Height(),
	}, nil
}
