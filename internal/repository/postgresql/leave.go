package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/leave"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// ListApprovedBetween implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, status, created_at
		FROM leaves
		WHERE employee_id = $1
		  AND status = 'Approved'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	return leaves, rows.Err()
}
