package problem

import (
	"fmt"
	"image/color"
	"math"
)

const (
	goldenRatioConjugate = 0.6180339887
	colorSaturation      = 0.8
	colorValue           = 0.75
)

// Color is an RGB triple with components in [0, 1]
type Color struct {
	R, G, B float64
}

// DistinctColor returns the color for the net inserted at index i.
// Hues step around the wheel by the golden ratio so that neighbouring
// indices land far apart.
func DistinctColor(i int) Color {
	_, hue := math.Modf(float64(i) * goldenRatioConjugate)
	return hsvToRGB(hue, colorSaturation, colorValue)
}

func hsvToRGB(h, s, v float64) Color {
	_, frac := math.Modf(h)
	h = frac * 6
	sector := math.Floor(h)
	f := h - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(sector) {
	case 0:
		return Color{R: v, G: t, B: p}
	case 1:
		return Color{R: q, G: v, B: p}
	case 2:
		return Color{R: p, G: v, B: t}
	case 3:
		return Color{R: p, G: q, B: v}
	case 4:
		return Color{R: t, G: p, B: v}
	default:
		return Color{R: v, G: p, B: q}
	}
}

// Distance returns the Euclidean distance between two colors in RGB space
func (c Color) Distance(o Color) float64 {
	return math.Sqrt((c.R-o.R)*(c.R-o.R) + (c.G-o.G)*(c.G-o.G) + (c.B-o.B)*(c.B-o.B))
}

// NRGBA converts to an opaque 8-bit color
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
