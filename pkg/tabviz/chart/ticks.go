package chart

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
)

// Tick levels step through 1, 2 and 5 times a power of ten.
// Level 3k+i has step stepMantissa[i] * 10^k.
var stepMantissa = [3]int64{1, 2, 5}

// funcTicker adapts count and tick closures to scale.Ticker.
type funcTicker struct {
	count func(level int) int
	ticks func(level int) []float64
}

func (t funcTicker) CountTicks(level int) int { return t.count(level) }

func (t funcTicker) TicksAtLevel(level int) interface{} { return t.ticks(level) }

// TickSet is the result of NiceTicks.
type TickSet struct {
	// Min and Max are the domain extended to whole steps.
	Min, Max float64
	// Step is the distance between ticks.
	Step float64
	// Values are the tick values in increasing order.
	Values []float64
	// Decimals is the number of fraction digits needed to label a tick.
	Decimals int
}

func levelStep(level int) (mant int64, exp int) {
	exp = floorDiv(level, 3)
	return stepMantissa[level-3*exp], exp
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// tickValue returns k*mant*10^exp while keeping short decimals exact.
func tickValue(k, mant int64, exp int) float64 {
	if exp >= 0 {
		return float64(k*mant) * math.Pow10(exp)
	}
	return float64(k*mant) / math.Pow10(-exp)
}

const tickEpsilon = 1e-9

// tickRange returns the first and last multiple of step covering [min, max].
func tickRange(min, max, step float64) (lo, hi int64) {
	lo = int64(math.Floor(min/step + tickEpsilon))
	hi = int64(math.Ceil(max/step - tickEpsilon))
	return lo, hi
}

// NiceTicks chooses between MinTicks and MaxTicks round tick values
// covering [min, max]. hint is the preferred maximum count.
// A degenerate domain is widened around its value before ticks are chosen.
func NiceTicks(min, max float64, hint int) TickSet {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		min, max = 0, 1
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		pad := math.Abs(min) / 10
		if pad == 0 {
			pad = 1
		}
		min, max = min-pad, max+pad
	}
	if hint < MinTicks {
		hint = MinTicks
	}
	if hint > MaxTicks {
		hint = MaxTicks
	}

	count := func(level int) int {
		mant, exp := levelStep(level)
		step := tickValue(1, mant, exp)
		lo, hi := tickRange(min, max, step)
		n := hi - lo + 1
		if n > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(n)
	}
	ticks := func(level int) []float64 {
		mant, exp := levelStep(level)
		lo, hi := tickRange(min, max, tickValue(1, mant, exp))
		values := make([]float64, 0, hi-lo+1)
		for k := lo; k <= hi; k++ {
			values = append(values, tickValue(k, mant, exp))
		}
		return values
	}

	guess := int(math.Floor(3 * math.Log10((max-min)/float64(hint))))
	opts := scale.TickOptions{Max: hint}
	level, ok := opts.FindLevel(funcTicker{count, ticks}, guess)
	if !ok {
		level = guess
	}
	// Prefer a denser level when the chosen one is too sparse.
	for count(level) < MinTicks && count(level-1) <= MaxTicks {
		level--
	}

	mant, exp := levelStep(level)
	values := ticks(level)
	decimals := 0
	if exp < 0 {
		decimals = -exp
	}
	return TickSet{
		Min:      values[0],
		Max:      values[len(values)-1],
		Step:     tickValue(1, mant, exp),
		Values:   values,
		Decimals: decimals,
	}
}

// Label formats a tick value with the set's precision.
func (s TickSet) Label(v float64) string {
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', s.Decimals, 64)
}
