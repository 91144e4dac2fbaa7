package objective

import (
	"math"

	"github.com/shiftopt/scheduler/pkg/model"
)

// SourceBalanceBreakdown reports each term of the source-balance objective
// (spec §4.6).
type SourceBalanceBreakdown struct {
	Distribution  float64
	Relationship  float64
	SkillDiversity float64
	IncomeDiversity float64
	Total         float64
}

// SourceBalanceScore scores how evenly shifts are spread across job
// sources. totalSources is the number of job sources offered in the
// request, used as the denominator for relationship score; offered sources
// that received no shift count as zero in the distribution score.
func SourceBalanceScore(shifts []model.SuggestedShift, totalSources int) SourceBalanceBreakdown {
	var b SourceBalanceBreakdown
	if len(shifts) == 0 || totalSources == 0 {
		return b
	}

	counts := make(map[string]int)
	incomeBySource := make(map[string]float64)
	var totalIncome float64
	for _, sh := range shifts {
		counts[sh.JobSourceID]++
		incomeBySource[sh.JobSourceID] += sh.CalculatedEarnings
		totalIncome += sh.CalculatedEarnings
	}
	usedSources := len(counts)

	distribution := countsToFloats(counts)
	for i := usedSources; i < totalSources; i++ {
		distribution = append(distribution, 0)
	}
	b.Distribution = math.Max(0, 1000*(1-coefficientOfVariation(distribution)))
	b.Relationship = 1000 * float64(usedSources) / float64(totalSources)
	b.SkillDiversity = 200 * float64(usedSources)

	if totalIncome > 0 {
		var entropy float64
		for _, income := range incomeBySource {
			if income <= 0 {
				continue
			}
			p := income / totalIncome
			entropy -= p * math.Log2(p)
		}
		maxEntropy := math.Log2(float64(usedSources))
		if maxEntropy > 0 {
			b.IncomeDiversity = (entropy / maxEntropy) * 1000
		}
	}

	b.Total = b.Distribution + b.Relationship + b.SkillDiversity + b.IncomeDiversity
	return b
}

func countsToFloats(counts map[string]int) []float64 {
	out := make([]float64, 0, len(counts))
	for _, c := range counts {
		out = append(out, float64(c))
	}
	return out
}

// coefficientOfVariation returns stddev/mean, or 0 when the mean is 0 or
// there's a single sample.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
