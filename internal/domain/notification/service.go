package notification

import "context"

// Service is the fire-and-forget notification sink plus the live feed behind
// the SSE stream. Implementations must swallow delivery failures:
// notifications are side effects and never block the workflow that triggered
// them.
type Service interface {
	Notify(ctx context.Context, recipientID string, title string, message string, severity Severity)

	// Subscribe registers a live listener for one user's notifications. The
	// returned cleanup must be called when the listener disconnects.
	Subscribe(ctx context.Context, userID string) (<-chan Event, func())
}

// Event is one frame of the live notification stream.
type Event struct {
	Event string
	Data  any
}
