package objective

import (
	"sort"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
)

// WorkLifeBalanceScore implements spec §4.6's work-life-balance objective:
// −1.0×total_hours + 0.3×consistency − 0.5×split_shift_penalty −
// 0.2×evening_penalty + 0.4×rest_bonus.
func WorkLifeBalanceScore(shifts []model.SuggestedShift) float64 {
	if len(shifts) == 0 {
		return 0
	}

	byDate := make(map[string][]model.SuggestedShift)
	var totalHours float64
	var eveningPenalty float64
	for _, sh := range shifts {
		dateKey := sh.Date.Format("2006-01-02")
		byDate[dateKey] = append(byDate[dateKey], sh)
		totalHours += sh.WorkingHours

		startMin, err := model.ClockMinutes(sh.Start)
		if err == nil && startMin >= 18*60 {
			eveningPenalty += 100 * sh.WorkingHours
		}
	}

	var splitPenalty float64
	for _, onDate := range byDate {
		if len(onDate) > 1 {
			splitPenalty += 1000 * float64(len(onDate)-1)
		}
	}

	consistency := consistencyBonus(shifts)
	restBonus := restBonus(byDate)

	return -1.0*totalHours + 0.3*consistency - 0.5*splitPenalty - 0.2*eveningPenalty + 0.4*restBonus
}

// restBonus awards 500 yen for each pair of worked dates separated by
// exactly one day off, and 200 yen per same-day gap of at least 2 hours
// between shifts.
func restBonus(byDate map[string][]model.SuggestedShift) float64 {
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var bonus float64
	for i := 0; i+1 < len(dates); i++ {
		d1, err1 := time.Parse("2006-01-02", dates[i])
		d2, err2 := time.Parse("2006-01-02", dates[i+1])
		if err1 == nil && err2 == nil && d2.Sub(d1).Hours() == 48 {
			bonus += 500
		}
	}

	for _, onDate := range byDate {
		if len(onDate) < 2 {
			continue
		}
		sorted := make([]model.SuggestedShift, len(onDate))
		copy(sorted, onDate)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		for i := 0; i+1 < len(sorted); i++ {
			endMin, e1 := model.ClockMinutes(sorted[i].End)
			startMin, e2 := model.ClockMinutes(sorted[i+1].Start)
			if e1 == nil && e2 == nil && startMin-endMin >= 120 {
				bonus += 200
			}
		}
	}
	return bonus
}
