package shift

import (
	"strings"
	"time"
)

// Shift is a long-lived, admin-edited shift definition. Start and end are
// wall-clock strings in "09:00 AM" form.
type Shift struct {
	ID           string
	Name         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	GraceMinutes int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Schedule is a per-employee, per-date roster override. Its own start/end
// take precedence over the linked Shift's; grace and break fall back to the
// linked Shift when one is referenced.
type Schedule struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	ShiftID      *string
	StartTime    string
	EndTime      string
	BreakMinutes *int
	GraceMinutes *int
	CreatedAt    time.Time
}

// Resolved is the effective shift policy for one employee on one calendar
// day. A copy of it is snapshotted onto every time log it governs, so later
// edits to the shift definition do not rewrite historical metrics.
type Resolved struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	GraceMinutes int    `json:"grace_minutes"`
	BreakMinutes int    `json:"break_minutes"`
}

var clockLayouts = []string{"03:04 PM", "3:04 PM", "15:04"}

// ParseClock parses a wall-clock "HH:MM AM/PM" string.
func ParseClock(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// anchor places a parsed wall-clock value on the given calendar date.
func anchor(clock time.Time, date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// StartOn returns the shift start as an absolute time on date.
func (r *Resolved) StartOn(date time.Time) (time.Time, bool) {
	clock, ok := ParseClock(r.StartTime)
	if !ok {
		return time.Time{}, false
	}
	return anchor(clock, date), true
}

// EndOn returns the shift end as an absolute time on date. Overnight shifts
// (end at or before start) roll over to the next day.
func (r *Resolved) EndOn(date time.Time) (time.Time, bool) {
	endClock, ok := ParseClock(r.EndTime)
	if !ok {
		return time.Time{}, false
	}
	end := anchor(endClock, date)
	if startClock, ok := ParseClock(r.StartTime); ok {
		start := anchor(startClock, date)
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}
	}
	return end, true
}

// DurationHours returns the scheduled shift length in hours, defaulting to 8
// when the stored clock strings cannot be parsed.
func (r *Resolved) DurationHours() float64 {
	start, okStart := r.StartOn(time.Time{})
	end, okEnd := r.EndOn(time.Time{})
	if !okStart || !okEnd {
		return 8
	}
	return end.Sub(start).Hours()
}
