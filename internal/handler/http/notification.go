package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/notification"
	"github.com/attendly-hq/tna-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	ListMy(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationRepo    notification.NotificationRepository
	notificationService notification.Service
}

func NewNotificationHandler(notificationRepo notification.NotificationRepository, notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
	}
}

type notificationResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Severity  notification.Severity `json:"severity"`
	IsRead    bool                  `json:"is_read"`
	ReadAt    *string               `json:"read_at,omitempty"`
	CreatedAt string                `json:"created_at"`
}

// ListMy implements NotificationHandler.
func (h *notificationHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	notifications, err := h.notificationRepo.ListForRecipient(r.Context(), userID, queryInt(r, "limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp := notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Severity:  n.Severity,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.ReadAt != nil {
			v := n.ReadAt.Format(time.RFC3339)
			resp.ReadAt = &v
		}
		out = append(out, resp)
	}

	response.Success(w, out)
}

// Stream holds an SSE connection open and pushes the caller's notifications
// as they are raised.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notificationService.Subscribe(r.Context(), userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
