// Package objective implements the composable scoring terms of the
// objective-function library (spec §4.6 "Objective Function Library"). The
// multi-objective strategy reports SourceBalanceScore; the genetic strategy
// computes its own fitness and does not call this package.
package objective

import (
	"math"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
)

// IncomeWeights are the default weights for IncomeScore.
type IncomeWeights struct {
	Base        float64
	Overtime    float64
	Weekend     float64
	Consistency float64
	Risk        float64
}

// DefaultIncomeWeights matches spec §4.6's literal default weight set.
func DefaultIncomeWeights() IncomeWeights {
	return IncomeWeights{Base: 1.0, Overtime: 0.3, Weekend: 0.2, Consistency: 0.1, Risk: -0.2}
}

// IncomeBreakdown reports each term of IncomeScore separately, for
// diagnostics and testing.
type IncomeBreakdown struct {
	Base        float64
	Overtime    float64
	Weekend     float64
	Consistency float64
	Risk        float64
	Total       float64
}

// IncomeScore computes the weighted income objective over shifts (spec
// §4.6). fuyouLimit is 0 when the request carries no fuyou_limit constraint,
// in which case the risk term is 0.
func IncomeScore(shifts []model.SuggestedShift, weights IncomeWeights, fuyouLimit float64) IncomeBreakdown {
	var b IncomeBreakdown

	hoursByDate := make(map[string]float64)
	for _, sh := range shifts {
		b.Base += sh.CalculatedEarnings
		hoursByDate[sh.Date.Format("2006-01-02")] += sh.WorkingHours

		weekday := sh.Date.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			b.Weekend += 0.10 * sh.CalculatedEarnings
		}
	}

	for _, hours := range hoursByDate {
		if hours > 8 {
			b.Overtime += 500 * (hours - 8)
		}
	}

	b.Consistency = consistencyBonus(shifts)

	if fuyouLimit > 0 {
		b.Risk = -(b.Base / fuyouLimit) * b.Base
	}

	b.Total = weights.Base*b.Base + weights.Overtime*b.Overtime + weights.Weekend*b.Weekend +
		weights.Consistency*b.Consistency + weights.Risk*math.Abs(b.Risk)
	return b
}

// consistencyBonus awards 500 yen for each shift beyond the first on the same
// weekday sharing a start time, plus 300 for each shift beyond the first on
// the same weekday sharing a (rounded) working-hours duration.
func consistencyBonus(shifts []model.SuggestedShift) float64 {
	type key struct {
		weekday int
		start   string
	}
	type durKey struct {
		weekday  int
		duration int
	}

	starts := make(map[key]int)
	durations := make(map[durKey]int)

	for _, sh := range shifts {
		wd := int(sh.Date.Weekday())
		starts[key{wd, sh.Start}]++
		durations[durKey{wd, int(math.Round(sh.WorkingHours))}]++
	}

	var bonus float64
	for _, n := range starts {
		if n > 1 {
			bonus += 500 * float64(n-1)
		}
	}
	for _, n := range durations {
		if n > 1 {
			bonus += 300 * float64(n-1)
		}
	}
	return bonus
}
