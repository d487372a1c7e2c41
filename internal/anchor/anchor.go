// Package anchor resolves named watermark positions to drawing coordinates.
//
// A single table of named anchors is shared by two coordinate strategies:
// raster surfaces with the origin at the top-left and y growing downward, and
// PDF pages with the origin at the bottom-left and y growing upward.
package anchor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPosition is returned for anchor names outside the known set.
var ErrInvalidPosition = errors.New("invalid position")

// Margins applied between content and the frame edge.
const (
	PDFMargin     = 50
	RasterMargin  = 50
	PreviewMargin = 20
)

// Position names a watermark anchor.
type Position string

// Known anchors.
const (
	Center      Position = "center"
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Positions lists every anchor in display order.
var Positions = []Position{Center, TopLeft, TopRight, BottomLeft, BottomRight}

type side int

const (
	start side = iota
	middle
	end
)

type placement struct {
	h side
	v side
}

var table = map[Position]placement{
	Center:      {middle, middle},
	TopLeft:     {start, start},
	TopRight:    {end, start},
	BottomLeft:  {start, end},
	BottomRight: {end, end},
}

// ParsePosition parses an anchor name. An empty name resolves to Center.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return Center, nil
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate reports whether p is a known anchor.
func (p Position) Validate() error {
	if _, ok := table[p]; !ok {
		return fmt.Errorf("%w: %q (must be center, top-left, top-right, bottom-left, or bottom-right)", ErrInvalidPosition, string(p))
	}
	return nil
}

// Point is a drawing coordinate in the strategy's space.
type Point struct {
	X float64
	Y float64
}

// Size is a width and height pair.
type Size struct {
	W float64
	H float64
}

func horizontal(h side, frame, content, margin float64) float64 {
	switch h {
	case start:
		return margin
	case end:
		return frame - content - margin
	default:
		return (frame - content) / 2
	}
}
