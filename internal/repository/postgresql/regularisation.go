package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/tna-backend-go/internal/domain/regularisation"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
)

type regularisationRepository struct {
	db *database.DB
}

func NewRegularisationRepository(db *database.DB) regularisation.RequestRepository {
	return &regularisationRepository{db: db}
}

const regularisationColumns = `
	r.id, r.employee_id, r.time_log_id, r.date,
	r.original_check_in, r.original_check_out, r.new_check_in, r.new_check_out,
	r.reason, r.status, r.admin_comment, r.action_by, r.created_at, r.updated_at`

func scanRegularisation(row pgx.Row, withName bool) (regularisation.Request, error) {
	var req regularisation.Request
	dest := []interface{}{
		&req.ID, &req.EmployeeID, &req.TimeLogID, &req.Date,
		&req.OriginalCheckIn, &req.OriginalCheckOut, &req.NewCheckIn, &req.NewCheckOut,
		&req.Reason, &req.Status, &req.AdminComment, &req.ActionBy, &req.CreatedAt, &req.UpdatedAt,
	}
	if withName {
		dest = append(dest, &req.EmployeeName)
	}
	return req, row.Scan(dest...)
}

// Create implements regularisation.RequestRepository.
func (r *regularisationRepository) Create(ctx context.Context, req regularisation.Request) (regularisation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularisation_requests (
			employee_id, time_log_id, date,
			original_check_in, original_check_out, new_check_in, new_check_out,
			reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.TimeLogID,
		req.Date,
		req.OriginalCheckIn,
		req.OriginalCheckOut,
		req.NewCheckIn,
		req.NewCheckOut,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return regularisation.Request{}, fmt.Errorf("failed to create regularisation request: %w", err)
	}

	return req, nil
}

// GetByID implements regularisation.RequestRepository.
func (r *regularisationRepository) GetByID(ctx context.Context, id string) (regularisation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + regularisationColumns + `
		FROM regularisation_requests r
		WHERE r.id = $1
	`

	req, err := scanRegularisation(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularisation.Request{}, regularisation.ErrRequestNotFound
		}
		return regularisation.Request{}, fmt.Errorf("failed to get regularisation request: %w", err)
	}

	return req, nil
}

// Update implements regularisation.RequestRepository.
func (r *regularisationRepository) Update(ctx context.Context, req regularisation.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularisation_requests SET
			status = $2,
			admin_comment = $3,
			action_by = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Status, req.AdminComment, req.ActionBy)
	if err != nil {
		return fmt.Errorf("failed to update regularisation request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return regularisation.ErrRequestNotFound
	}

	return nil
}

// CountForEmployeeBetween implements regularisation.RequestRepository.
func (r *regularisationRepository) CountForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM regularisation_requests
		WHERE employee_id = $1 AND date >= $2 AND date < $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count regularisation requests: %w", err)
	}

	return count, nil
}

// List implements regularisation.RequestRepository.
func (r *regularisationRepository) List(ctx context.Context, filter regularisation.RequestFilter) ([]regularisation.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND LOWER(r.status) = LOWER($%d)", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM regularisation_requests r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regularisation requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+regularisationColumns+`,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM regularisation_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list regularisation requests: %w", err)
	}
	defer rows.Close()

	var requests []regularisation.Request
	for rows.Next() {
		req, err := scanRegularisation(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan regularisation request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}
