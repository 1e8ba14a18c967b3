package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListActiveBetween retrieves active holidays with date in [from, to].
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
