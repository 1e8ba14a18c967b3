package notification

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	Severity    Severity
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
