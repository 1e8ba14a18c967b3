package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/notification"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/sse"
)

type service struct {
	repo   notification.NotificationRepository
	hub    *sse.Hub
	logger *slog.Logger
}

// NewNotificationService creates the persistence-backed notification sink.
// Delivery failures are logged and swallowed; notifications are side effects
// and never fail the workflow that raised them.
func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub, logger *slog.Logger) notification.Service {
	return &service{repo: repo, hub: hub, logger: logger}
}

type eventPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Notify implements notification.Service.
func (s *service) Notify(ctx context.Context, recipientID, title, message string, severity notification.Severity) {
	created, err := s.repo.Create(ctx, notification.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Severity:    severity,
	})
	if err != nil {
		s.logger.Warn("notification delivery failed",
			slog.String("recipient_id", recipientID),
			slog.String("title", title),
			slog.Any("error", err))
		return
	}

	s.hub.Publish(recipientID, sse.Event{
		Event: "notification",
		Data: eventPayload{
			ID:        created.ID,
			Title:     created.Title,
			Message:   created.Message,
			Severity:  string(created.Severity),
			CreatedAt: created.CreatedAt,
		},
	})
}

// Subscribe implements notification.Service. The returned channel closes when
// cleanup is called; slow consumers drop frames rather than block publishers.
func (s *service) Subscribe(_ context.Context, userID string) (<-chan notification.Event, func()) {
	src, unsubscribe := s.hub.Subscribe(userID)
	out := make(chan notification.Event, 10)

	go func() {
		defer close(out)
		for ev := range src {
			select {
			case out <- notification.Event{Event: ev.Event, Data: ev.Data}:
			default:
			}
		}
	}()

	return out, unsubscribe
}
