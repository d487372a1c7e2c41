package anchor

// Raster resolves anchors on a surface whose origin is the top-left corner.
type Raster struct {
	Margin float64
}

// Text returns the left edge and baseline for a run of text.
//
// The center anchor places the baseline at half the frame height without
// compensating for glyph height; top anchors offset the baseline by the
// content height so the glyphs sit inside the margin.
func (r Raster) Text(p Position, frame, content Size) Point {
	pl := table[p]
	x := horizontal(pl.h, frame.W, content.W, r.Margin)

	var y float64
	switch pl.v {
	case start:
		y = r.Margin + content.H
	case end:
		y = frame.H - r.Margin
	default:
		y = frame.H / 2
	}
	return Point{X: x, Y: y}
}

// Box returns the top-left corner for a rectangular overlay.
func (r Raster) Box(p Position, frame, content Size) Point {
	pl := table[p]
	x := horizontal(pl.h, frame.W, content.W, r.Margin)

	var y float64
	switch pl.v {
	case start:
		y = r.Margin
	case end:
		y = frame.H - content.H - r.Margin
	default:
		y = (frame.H - content.H) / 2
	}
	return Point{X: x, Y: y}
}
