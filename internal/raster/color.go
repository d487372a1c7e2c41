package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b), and rgba(r,g,b,a)
// with a in [0,1].
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[5:len(v)-1], 4)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[4:len(v)-1], 3)
	}

	return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOption, s)
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: color #%s", ErrInvalidOption, h)
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color #%s", ErrInvalidOption, h)
	}

	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

func parseFunc(body string, n int) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("%w: color components %q", ErrInvalidOption, body)
	}

	var rgb [3]uint8
	for i := range 3 {
		c, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || c < 0 || c > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: color component %q", ErrInvalidOption, parts[i])
		}
		rgb[i] = uint8(c)
	}

	a := uint8(255)
	if n == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.NRGBA{}, fmt.Errorf("%w: alpha %q", ErrInvalidOption, parts[3])
		}
		a = uint8(f*255 + 0.5)
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: a}, nil
}
