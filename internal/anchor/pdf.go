package anchor

// PDF resolves anchors on a page whose origin is the bottom-left corner.
type PDF struct {
	Margin float64
}

// Text returns the left edge and baseline for a run of text. The content
// height is the font size.
func (s PDF) Text(p Position, frame, content Size) Point {
	pl := table[p]
	x := horizontal(pl.h, frame.W, content.W, s.Margin)

	var y float64
	switch pl.v {
	case start:
		y = frame.H - s.Margin
	case end:
		y = s.Margin
	default:
		y = (frame.H - content.H) / 2
	}
	return Point{X: x, Y: y}
}
