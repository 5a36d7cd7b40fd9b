package chart

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/shopspring/decimal"

	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
)

// accumulator collects the non-null values of one series in one category.
// Sums are kept in decimal so that 0.1+0.2 totals 0.3.
type accumulator struct {
	sum    decimal.Decimal
	values []float64
}

func (a *accumulator) add(v dataset.Value) bool {
	switch v.Type() {
	case dataset.TypeInteger:
		i, _ := v.Int()
		a.sum = a.sum.Add(decimal.NewFromInt(i))
		a.values = append(a.values, float64(i))
	case dataset.TypeFloat:
		f, _ := v.Float()
		a.sum = a.sum.Add(decimal.NewFromFloat(f))
		a.values = append(a.values, f)
	default:
		return false
	}
	return true
}

func (a *accumulator) count() int {
	return len(a.values)
}

// result applies agg. An empty accumulator aggregates to 0.
func (a *accumulator) result(agg Aggregation) float64 {
	if len(a.values) == 0 {
		return 0
	}
	switch agg {
	case AggregateMean:
		f, _ := a.sum.Div(decimal.NewFromInt(int64(len(a.values)))).Float64()
		return f
	case AggregateMin:
		min, _ := stats.Bounds(a.values)
		return min
	case AggregateMax:
		_, max := stats.Bounds(a.values)
		return max
	case AggregateSum:
	}
	f, _ := a.sum.Float64()
	return f
}
