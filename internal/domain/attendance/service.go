package attendance

import (
	"context"

	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
)

// Syncer projects a time log into the daily ledger. It must run inside the
// same transaction as the time log save so derived fields never land
// inconsistent with their source sessions.
type Syncer interface {
	SyncFromLog(ctx context.Context, log *timelog.TimeLog) error
}

// AttendanceService is the admin/reporting surface over the ledger.
type AttendanceService interface {
	// List retrieves ledger records with filters.
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Get retrieves a single record by id.
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Update applies an administrative override to a record.
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
