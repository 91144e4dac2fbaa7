// Package problem converts a validated OptimizationRequest into the numeric
// formulation solvers operate on (spec §4.2 ProblemBuilder).
package problem

import (
	"fmt"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
)

// Problem is the numeric formulation of a request: the expanded date set,
// job-source index, availability matrix, and keyed constraint map.
type Problem struct {
	Request      *model.OptimizationRequest
	Dates        []time.Time
	JobSources   map[string]model.JobSource
	Availability map[string][24]bool // key: date.Format("2006-01-02")
	Constraints  map[model.ConstraintKind]model.Constraint
}

// Build expands req into a Problem. req is assumed to have already passed
// the validator cascade.
func Build(req *model.OptimizationRequest) *Problem {
	p := &Problem{
		Request:     req,
		JobSources:  make(map[string]model.JobSource, len(req.JobSources)),
		Constraints: make(map[model.ConstraintKind]model.Constraint, len(req.Constraints)),
	}

	for _, js := range req.JobSources {
		p.JobSources[js.ID] = js
	}
	for _, c := range req.Constraints {
		p.Constraints[c.Kind] = c
	}

	p.Dates = expandDates(req.Start, req.End)
	p.Availability = buildAvailability(p.Dates, req.AvailabilitySlots)

	return p
}

func expandDates(start, end time.Time) []time.Time {
	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// buildAvailability synthesizes A[d][h] (spec §4.2). When a request carries
// no availability slots at all, every hour of every date is treated as
// available, since no preference has been expressed to restrict it.
func buildAvailability(dates []time.Time, slots []model.AvailabilitySlot) map[string][24]bool {
	out := make(map[string][24]bool, len(dates))

	if len(slots) == 0 {
		var allOpen [24]bool
		for h := range allOpen {
			allOpen[h] = true
		}
		for _, d := range dates {
			out[d.Format("2006-01-02")] = allOpen
		}
		return out
	}

	slotsByWeekday := make(map[int][]model.AvailabilitySlot)
	for _, s := range slots {
		if !s.Available {
			continue
		}
		slotsByWeekday[s.DayOfWeek] = append(slotsByWeekday[s.DayOfWeek], s)
	}

	for _, d := range dates {
		var hours [24]bool
		weekday := int(d.Weekday()) // time.Weekday: Sunday=0 .. Saturday=6, matches spec
		for _, s := range slotsByWeekday[weekday] {
			startMin, err := model.ClockMinutes(s.Start)
			if err != nil {
				continue
			}
			endMin, err := model.ClockMinutes(s.End)
			if err != nil {
				continue
			}
			for h := 0; h < 24; h++ {
				hourStart := h * 60
				if hourStart >= startMin && hourStart < endMin {
					hours[h] = true
				}
			}
		}
		out[d.Format("2006-01-02")] = hours
	}

	return out
}

// Available reports whether hour h (0-23) on date d is available.
func (p *Problem) Available(d time.Time, h int) bool {
	if h < 0 || h > 23 {
		return false
	}
	hours, ok := p.Availability[d.Format("2006-01-02")]
	if !ok {
		return false
	}
	return hours[h]
}

// ISOWeekKey returns a grouping key for the ISO 8601 week containing d, used
// to bucket weekly-hours constraints.
func ISOWeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
