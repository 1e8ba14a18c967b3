package notification

import "context"

type NotificationRepository interface {
	// Create persists a notification row.
	Create(ctx context.Context, n Notification) (Notification, error)

	// ListForRecipient retrieves a user's notifications, newest first.
	ListForRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)
}
