package chart

import (
	"math"
	"reflect"
	"testing"
)

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		min, max float64
		hint     int
		expected []float64
	}{
		{0, 100, 6, []float64{0, 20, 40, 60, 80, 100}},
		{0.3, 2.7, 6, []float64{0, 1, 2, 3}},
		{0, 1, 6, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{0, 4, 6, []float64{0, 1, 2, 3, 4}},
		{-1, 5, 6, []float64{-2, 0, 2, 4, 6}},
	}

	for _, tt := range tests {
		set := NiceTicks(tt.min, tt.max, tt.hint)
		if !reflect.DeepEqual(set.Values, tt.expected) {
			t.Errorf("NiceTicks(%v, %v, %d) = %v, expected %v", tt.min, tt.max, tt.hint, set.Values, tt.expected)
		}
	}
}

func TestNiceTicksProperties(t *testing.T) {
	ranges := [][2]float64{
		{0, 1}, {-3, 17}, {0.001, 0.0093}, {1e6, 3.5e6}, {-250, -10},
		{19723, 19800}, {42, 42}, {0, 0}, {-0.5, 0.5}, {1, 1000000},
	}

	for _, r := range ranges {
		for hint := 0; hint <= 12; hint++ {
			set := NiceTicks(r[0], r[1], hint)
			n := len(set.Values)
			if n < MinTicks || n > MaxTicks {
				t.Errorf("NiceTicks(%v, %d) has %d ticks", r, hint, n)
			}
			if set.Min > r[0] || set.Max < r[1] {
				t.Errorf("NiceTicks(%v, %d) domain [%v, %v] does not cover the data", r, hint, set.Min, set.Max)
			}
			mant := set.Step / math.Pow10(int(math.Floor(math.Log10(set.Step)+1e-9)))
			if math.Abs(mant-1) > 1e-6 && math.Abs(mant-2) > 1e-6 && math.Abs(mant-5) > 1e-6 {
				t.Errorf("NiceTicks(%v, %d) step %v is not 1, 2 or 5 times a power of ten", r, hint, set.Step)
			}
		}
	}
}

func TestNiceTicksLabels(t *testing.T) {
	set := NiceTicks(0, 1, 6)
	if label := set.Label(0.6); label != "0.6" {
		t.Errorf("Label(0.6) = %q, expected 0.6", label)
	}
	set = NiceTicks(0, 100, 6)
	if label := set.Label(40); label != "40" {
		t.Errorf("Label(40) = %q, expected 40", label)
	}
	if label := set.Label(math.Copysign(0, -1)); label != "0" {
		t.Errorf("Label(-0) = %q, expected 0", label)
	}
}

func TestNiceTicksInvalid(t *testing.T) {
	set := NiceTicks(math.NaN(), 5, 6)
	if set.Min != 0 || set.Max != 1 {
		t.Errorf("Expected NaN input to fall back to [0, 1], got [%v, %v]", set.Min, set.Max)
	}
}
