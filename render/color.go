package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
)

var ErrBadColor = errors.New("invalid hex color")

// HSV converts a hue in degrees, saturation and value in [0,1] to an opaque
// color. Hues outside [0,360) wrap around, so 360 is red.
func HSV(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch int(hp) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return color.RGBA{R: to8(r + m), G: to8(g + m), B: to8(b + m), A: 255}
}

// Hue returns the fully saturated, full value color of hue h.
func Hue(h int) color.RGBA { return HSV(float64(h), 1, 1) }

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func to8(x float64) uint8 { return uint8(math.Round(clamp01(x) * 255)) }

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: length of %q", ErrBadColor, hex)
	}
	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q: %w", ErrBadColor, hex, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
