package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/JaimeStill/file-lab/internal/anchor"
)

// Text watermark defaults.
const (
	DefaultTextColor = "#FFFFFF"
	StrokeWidth      = 2
	// ImageMarkRatio bounds an image watermark to this share of the frame.
	ImageMarkRatio = 0.3
)

var strokeColor = color.NRGBA{A: 128}

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

func bold() (*opentype.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

// Watermark describes a text overlay. Zero values select defaults: font size
// floor(width/20), white fill, center position, and the export margin.
type Watermark struct {
	Text     string
	Opacity  float64
	Position anchor.Position
	Color    string
	FontSize float64
	Margin   float64
}

func (w Watermark) resolve(width int) (Watermark, color.NRGBA, error) {
	if strings.TrimSpace(w.Text) == "" {
		return w, color.NRGBA{}, fmt.Errorf("%w: watermark text required", ErrInvalidOption)
	}
	if math.IsNaN(w.Opacity) || w.Opacity < 0 || w.Opacity > 1 {
		return w, color.NRGBA{}, fmt.Errorf("%w: opacity %v outside [0,1]", ErrInvalidOption, w.Opacity)
	}
	if w.Position == "" {
		w.Position = anchor.Center
	}
	if err := w.Position.Validate(); err != nil {
		return w, color.NRGBA{}, err
	}
	if w.FontSize <= 0 {
		w.FontSize = math.Max(1, math.Floor(float64(width)/20))
	}
	if w.Margin <= 0 {
		w.Margin = anchor.RasterMargin
	}
	if w.Color == "" {
		w.Color = DefaultTextColor
	}

	fill, err := ParseColor(w.Color)
	if err != nil {
		return w, color.NRGBA{}, err
	}
	return w, fill, nil
}

// OverlayText draws wm onto a copy of s. The text is stroked with translucent
// black and filled with wm.Color, and the combined layer is composited at
// wm.Opacity. Pixels outside the text keep their original values.
func OverlayText(s *Surface, wm Watermark) (*Surface, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: empty surface", ErrEncode)
	}

	wm, fill, err := wm.resolve(s.Width())
	if err != nil {
		return nil, err
	}

	f, err := bold()
	if err != nil {
		return nil, fmt.Errorf("%w: load font: %v", ErrEncode, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    wm.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font face: %v", ErrEncode, err)
	}
	defer face.Close()

	width := font.MeasureString(face, wm.Text)
	frame := anchor.Size{W: float64(s.Width()), H: float64(s.Height())}
	content := anchor.Size{W: fixedToFloat(width), H: wm.FontSize}

	at := anchor.Raster{Margin: wm.Margin}.Text(wm.Position, frame, content)
	dot := fixed.Point26_6{X: floatToFixed(at.X), Y: floatToFixed(at.Y)}

	bounds := s.img.Bounds()
	layer := image.NewNRGBA(bounds)

	mask := image.NewAlpha(bounds)
	for dx := -StrokeWidth; dx <= StrokeWidth; dx++ {
		for dy := -StrokeWidth; dy <= StrokeWidth; dy++ {
			if dx*dx+dy*dy > StrokeWidth*StrokeWidth {
				continue
			}
			d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
			d.Dot = dot.Add(fixed.P(dx, dy))
			d.DrawString(wm.Text)
		}
	}
	draw.DrawMask(layer, bounds, image.NewUniform(strokeColor), image.Point{}, mask, bounds.Min, draw.Over)

	d := font.Drawer{Dst: layer, Src: image.NewUniform(fill), Face: face, Dot: dot}
	d.DrawString(wm.Text)

	return &Surface{img: imaging.Overlay(s.img, layer, bounds.Min, wm.Opacity)}, nil
}

// OverlayImage composites mark onto a copy of s at opacity. Marks larger than
// 30% of the frame in either dimension are scaled down uniformly to fit;
// smaller marks keep their size.
func OverlayImage(s, mark *Surface, opacity float64, position anchor.Position, margin float64) (*Surface, error) {
	if s == nil || mark == nil {
		return nil, fmt.Errorf("%w: empty surface", ErrEncode)
	}
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("%w: opacity %v outside [0,1]", ErrInvalidOption, opacity)
	}
	if position == "" {
		position = anchor.Center
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}
	if margin <= 0 {
		margin = anchor.RasterMargin
	}

	maxW := float64(s.Width()) * ImageMarkRatio
	maxH := float64(s.Height()) * ImageMarkRatio
	mw, mh := float64(mark.Width()), float64(mark.Height())

	img := image.Image(mark.img)
	if mw > maxW || mh > maxH {
		scale := math.Min(maxW/mw, maxH/mh)
		mw = math.Max(1, math.Round(mw*scale))
		mh = math.Max(1, math.Round(mh*scale))
		img = imaging.Resize(mark.img, int(mw), int(mh), imaging.Lanczos)
	}

	frame := anchor.Size{W: float64(s.Width()), H: float64(s.Height())}
	at := anchor.Raster{Margin: margin}.Box(position, frame, anchor.Size{W: mw, H: mh})
	pos := image.Pt(int(math.Round(at.X)), int(math.Round(at.Y)))

	return &Surface{img: imaging.Overlay(s.img, img, pos, opacity)}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
