package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, break_minutes, grace_minutes,
		       created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes,
		&s.GraceMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by id: %w", err)
	}

	return s, nil
}

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) shift.ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = `
	id, employee_id, date, shift_id, start_time, end_time,
	break_minutes, grace_minutes, created_at`

func scanSchedule(row pgx.Row) (shift.Schedule, error) {
	var s shift.Schedule
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.ShiftID, &s.StartTime, &s.EndTime,
		&s.BreakMinutes, &s.GraceMinutes, &s.CreatedAt,
	)
	return s, err
}

// ListForEmployeeBetween implements shift.ScheduleRepository.
func (r *scheduleRepository) ListForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM shift_schedules
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift schedules: %w", err)
	}
	defer rows.Close()

	var schedules []shift.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

// GetForEmployeeInRange implements shift.ScheduleRepository.
func (r *scheduleRepository) GetForEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (*shift.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM shift_schedules
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
		LIMIT 1
	`

	s, err := scanSchedule(q.QueryRow(ctx, query, employeeID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No roster entry for the range
		}
		return nil, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	return &s, nil
}
