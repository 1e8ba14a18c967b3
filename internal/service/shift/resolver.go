package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
)

// DefaultGraceMinutes applies when neither the roster entry nor a linked
// shift definition carries an explicit grace window.
const DefaultGraceMinutes = 15

type resolver struct {
	scheduleRepo shift.ScheduleRepository
	shiftRepo    shift.ShiftRepository
}

// NewResolver creates the effective-shift resolver. Roster entries win over
// the employee's default shift; an employee with neither has no policy.
func NewResolver(scheduleRepo shift.ScheduleRepository, shiftRepo shift.ShiftRepository) shift.Resolver {
	return &resolver{
		scheduleRepo: scheduleRepo,
		shiftRepo:    shiftRepo,
	}
}

// Resolve implements shift.Resolver.
func (r *resolver) Resolve(ctx context.Context, emp employee.Employee, date time.Time) (*shift.Resolved, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	schedule, err := r.findRosterEntry(ctx, emp.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster entry: %w", err)
	}

	if schedule != nil {
		return r.fromSchedule(ctx, schedule)
	}

	if emp.ShiftID != nil && *emp.ShiftID != "" {
		def, err := r.shiftRepo.GetByID(ctx, *emp.ShiftID)
		if err != nil {
			if errors.Is(err, shift.ErrShiftNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to resolve default shift: %w", err)
		}
		return &shift.Resolved{
			StartTime:    def.StartTime,
			EndTime:      def.EndTime,
			GraceMinutes: def.GraceMinutes,
			BreakMinutes: def.BreakMinutes,
		}, nil
	}

	return nil, nil
}

// findRosterEntry searches one day either side of the target day to tolerate
// entries stored with an off-by-one date from timezone conversion, preferring
// an entry on the day itself, then falls back to the exact-range query.
func (r *resolver) findRosterEntry(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*shift.Schedule, error) {
	window, err := r.scheduleRepo.ListForEmployeeBetween(ctx, employeeID,
		dayStart.Add(-24*time.Hour), dayStart.Add(48*time.Hour))
	if err != nil {
		return nil, err
	}

	for i := range window {
		y, m, d := window[i].Date.Date()
		if y == dayStart.Year() && m == dayStart.Month() && d == dayStart.Day() {
			return &window[i], nil
		}
	}

	return r.scheduleRepo.GetForEmployeeInRange(ctx, employeeID, dayStart, dayEnd)
}

// fromSchedule builds the effective policy from a roster entry. The entry's
// own start/end always apply; grace and break come from the linked shift
// definition when one resolves, then from the entry's own optional values,
// then from defaults.
func (r *resolver) fromSchedule(ctx context.Context, schedule *shift.Schedule) (*shift.Resolved, error) {
	resolved := &shift.Resolved{
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		GraceMinutes: DefaultGraceMinutes,
	}

	var def *shift.Shift
	if schedule.ShiftID != nil && *schedule.ShiftID != "" {
		s, err := r.shiftRepo.GetByID(ctx, *schedule.ShiftID)
		if err != nil && !errors.Is(err, shift.ErrShiftNotFound) {
			return nil, fmt.Errorf("failed to resolve linked shift: %w", err)
		}
		if err == nil {
			def = &s
		}
	}

	switch {
	case def != nil:
		resolved.GraceMinutes = def.GraceMinutes
	case schedule.GraceMinutes != nil:
		resolved.GraceMinutes = *schedule.GraceMinutes
	}

	switch {
	case def != nil:
		resolved.BreakMinutes = def.BreakMinutes
	case schedule.BreakMinutes != nil:
		resolved.BreakMinutes = *schedule.BreakMinutes
	}

	return resolved, nil
}
