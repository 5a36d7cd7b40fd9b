package chart

import (
	"regexp"
	"testing"
)

func TestPaletteDeterministic(t *testing.T) {
	a := NewPalette(0.25).Colors(5)
	b := NewPalette(0.25).Colors(5)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Color %d differs between palettes with the same seed: %s vs %s", i, a[i], b[i])
		}
	}

	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	seen := make(map[string]bool)
	for _, c := range a {
		if !hex.MatchString(c) {
			t.Errorf("Color %q is not #rrggbb", c)
		}
		if seen[c] {
			t.Errorf("Color %q repeated", c)
		}
		seen[c] = true
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v  float64
		expected [3]uint8
	}{
		{0, 1, 1, [3]uint8{255, 0, 0}},
		{2.0 / 3.0, 1, 0.5, [3]uint8{0, 0, 128}},
		{1.0 / 3.0, 0.5, 0.75, [3]uint8{96, 191, 96}},
	}

	for _, tt := range tests {
		r, g, b := hsvToRGB(tt.h, tt.s, tt.v)
		if [3]uint8{r, g, b} != tt.expected {
			t.Errorf("hsvToRGB(%v, %v, %v) = %v, expected %v", tt.h, tt.s, tt.v, [3]uint8{r, g, b}, tt.expected)
		}
	}
}
