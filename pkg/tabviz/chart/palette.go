package chart

import (
	"fmt"
	"math"
)

// Palette generates series colors. Each hue is offset from the previous
// one, so neighbouring series differ strongly. The same seed always yields
// the same sequence.
type Palette struct {
	offset float64
	hue    float64
}

const (
	// paletteBaseHue is the hue of the first color before the offset is applied.
	paletteBaseHue    = 0.55
	paletteRatio      = 0.60
	paletteSaturation = 0.69
	paletteValue      = 0.85
)

// NewPalette returns a palette for seed. Only the first four fraction
// digits of seed are significant.
func NewPalette(seed float64) *Palette {
	offset := math.Trunc(seed*10000) / 10000
	offset -= math.Floor(offset)
	return &Palette{offset: offset, hue: paletteBaseHue}
}

// Next returns the next color as #rrggbb.
func (p *Palette) Next() string {
	p.hue = math.Mod(p.offset+paletteRatio+p.hue, 1)
	r, g, b := hsvToRGB(p.hue, paletteSaturation, paletteValue)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Colors returns the next n colors.
func (p *Palette) Colors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = p.Next()
	}
	return colors
}

// hsvToRGB converts hue, saturation and value in [0,1] to 8-bit channels.
func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	h *= 360
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	return channel(rf + m), channel(gf + m), channel(bf + m)
}

func channel(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}
