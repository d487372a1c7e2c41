package raster

import (
	"fmt"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeToFrame letterboxes s into a width x height frame. The image is scaled
// uniformly to fit entirely inside the frame, centered, and the remaining area
// is filled with white. The result is always exactly width x height.
func ResizeToFrame(s *Surface, width, height int) (*Surface, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: empty surface", ErrEncode)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame %dx%d", ErrEncode, width, height)
	}

	sw, sh := float64(s.Width()), float64(s.Height())
	scale := math.Min(float64(width)/sw, float64(height)/sh)

	fw := min(width, max(1, int(math.Round(sw*scale))))
	fh := min(height, max(1, int(math.Round(sh*scale))))

	fitted := imaging.Resize(s.img, fw, fh, imaging.Lanczos)
	frame := imaging.New(width, height, color.White)

	return &Surface{img: imaging.OverlayCenter(frame, fitted, 1.0)}, nil
}
