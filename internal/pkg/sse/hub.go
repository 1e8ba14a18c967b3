package sse

import (
	"sync"
)

// Event is one payload pushed down a notification stream. UserID routes it;
// Event names the kind ("notification.created") for the SSE event field.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub is the in-process fan-out between the notification service and the
// open /notifications/stream connections. A user may hold several
// subscriptions at once (multiple tabs); each gets its own channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe opens a buffered channel for the user's events. The returned
// cleanup must be called when the stream closes; it closes the channel.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers the event to every open subscription for the user.
// Delivery is best-effort: a subscriber whose buffer is full is skipped
// rather than blocking the publisher.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[userID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}
