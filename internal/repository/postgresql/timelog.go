package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
)

type timeLogRepository struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) timelog.TimeLogRepository {
	return &timeLogRepository{db: db}
}

const timeLogColumns = `
	t.id, t.employee_id, t.date, t.sessions, t.shift,
	t.proper_check_in, t.late_login, t.late_reason, t.late_approved, t.has_permission,
	t.auto_logout, t.early_logout, t.proper_check_out, t.late_logout,
	t.gross_working_hours, t.net_working_hours, t.overtime_hours, t.attendance_status,
	t.created_at, t.updated_at`

func scanTimeLog(row pgx.Row) (timelog.TimeLog, error) {
	var t timelog.TimeLog
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.Date, &t.Sessions, &t.Shift,
		&t.ProperCheckIn, &t.LateLogin, &t.LateReason, &t.LateApproved, &t.HasPermission,
		&t.AutoLogout, &t.EarlyLogout, &t.ProperCheckOut, &t.LateLogout,
		&t.GrossWorkingHours, &t.NetWorkingHours, &t.OvertimeHours, &t.AttendanceStatus,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements timelog.TimeLogRepository.
func (r *timeLogRepository) Create(ctx context.Context, log timelog.TimeLog) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_logs (
			employee_id, date, sessions, shift,
			proper_check_in, late_login, late_reason, late_approved, has_permission,
			auto_logout, early_logout, proper_check_out, late_logout,
			gross_working_hours, net_working_hours, overtime_hours, attendance_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.EmployeeID,
		log.Date,
		log.Sessions,
		log.Shift,
		log.ProperCheckIn,
		log.LateLogin,
		log.LateReason,
		log.LateApproved,
		log.HasPermission,
		log.AutoLogout,
		log.EarlyLogout,
		log.ProperCheckOut,
		log.LateLogout,
		log.GrossWorkingHours,
		log.NetWorkingHours,
		log.OvertimeHours,
		log.AttendanceStatus,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		return timelog.TimeLog{}, fmt.Errorf("failed to create time log: %w", err)
	}

	return log, nil
}

// Update implements timelog.TimeLogRepository.
func (r *timeLogRepository) Update(ctx context.Context, log timelog.TimeLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_logs SET
			sessions = $2,
			shift = $3,
			proper_check_in = $4,
			late_login = $5,
			late_reason = $6,
			late_approved = $7,
			has_permission = $8,
			auto_logout = $9,
			early_logout = $10,
			proper_check_out = $11,
			late_logout = $12,
			gross_working_hours = $13,
			net_working_hours = $14,
			overtime_hours = $15,
			attendance_status = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		log.ID,
		log.Sessions,
		log.Shift,
		log.ProperCheckIn,
		log.LateLogin,
		log.LateReason,
		log.LateApproved,
		log.HasPermission,
		log.AutoLogout,
		log.EarlyLogout,
		log.ProperCheckOut,
		log.LateLogout,
		log.GrossWorkingHours,
		log.NetWorkingHours,
		log.OvertimeHours,
		log.AttendanceStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update time log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timelog.ErrTimeLogNotFound
	}

	return nil
}

// GetByID implements timelog.TimeLogRepository.
func (r *timeLogRepository) GetByID(ctx context.Context, id string) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.id = $1
	`

	log, err := scanTimeLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeLog{}, timelog.ErrTimeLogNotFound
		}
		return timelog.TimeLog{}, fmt.Errorf("failed to get time log by id: %w", err)
	}

	return log, nil
}

// GetByEmployeeAndDate implements timelog.TimeLogRepository.
func (r *timeLogRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.employee_id = $1 AND t.date = $2
		LIMIT 1
	`

	log, err := scanTimeLog(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No log for the day yet
		}
		return nil, fmt.Errorf("failed to get time log by employee and date: %w", err)
	}

	return &log, nil
}

// GetLatestSince implements timelog.TimeLogRepository.
func (r *timeLogRepository) GetLatestSince(ctx context.Context, employeeID string, since time.Time) (*timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.employee_id = $1 AND t.date >= $2
		ORDER BY t.date DESC
		LIMIT 1
	`

	log, err := scanTimeLog(q.QueryRow(ctx, query, employeeID, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest time log: %w", err)
	}

	return &log, nil
}

// ListOpenBefore implements timelog.TimeLogRepository.
func (r *timeLogRepository) ListOpenBefore(ctx context.Context, employeeID string, day time.Time) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	// The last array element is the only one that can be open.
	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.employee_id = $1
		  AND t.date < $2
		  AND t.sessions -> -1 ->> 'check_out' IS NULL
		  AND jsonb_array_length(t.sessions) > 0
		ORDER BY t.date
	`

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list open time logs: %w", err)
	}
	defer rows.Close()

	return collectTimeLogs(rows)
}

// ListAllOpenBefore implements timelog.TimeLogRepository.
func (r *timeLogRepository) ListAllOpenBefore(ctx context.Context, day time.Time) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.date < $1
		  AND t.sessions -> -1 ->> 'check_out' IS NULL
		  AND jsonb_array_length(t.sessions) > 0
		ORDER BY t.employee_id, t.date
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list open time logs: %w", err)
	}
	defer rows.Close()

	return collectTimeLogs(rows)
}

// List implements timelog.TimeLogRepository.
func (r *timeLogRepository) List(ctx context.Context, filter timelog.TimeLogFilter, employeeID *string) ([]timelog.TimeLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM time_logs t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time logs: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+timeLogColumns+`
		FROM time_logs t
		WHERE %s
		ORDER BY t.date %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time logs: %w", err)
	}
	defer rows.Close()

	logs, err := collectTimeLogs(rows)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func collectTimeLogs(rows pgx.Rows) ([]timelog.TimeLog, error) {
	var logs []timelog.TimeLog
	for rows.Next() {
		log, err := scanTimeLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
