package realtime

import (
	"errors"
	"sync"

	"kietcollab/models"
)

// Event is the single live-push payload shape. Targeted sends carry the
// persisted record; ephemeral broadcasts carry a record-shaped payload
// that was never written to the store.
type Event struct {
	Type string              `json:"type"`
	Data models.Notification `json:"data"`
}

// EventTypeNotification is the only event type pushed to clients.
const EventTypeNotification = "notification"

var (
	// ErrChannelClosed is returned when pushing to a channel whose
	// connection has gone away.
	ErrChannelClosed = errors.New("channel closed")
	// ErrChannelFull is returned when the subscriber is too slow to drain
	// its buffer. The event is dropped rather than blocking the producer.
	ErrChannelFull = errors.New("channel buffer full")
)

// Channel delivers events to exactly one live connection.
type Channel struct {
	UserID string

	mu     sync.Mutex
	events chan Event
	closed bool
}

// Events returns the receive side consumed by the connection handler.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Push attempts a non-blocking delivery of the event.
func (c *Channel) Push(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}
	select {
	case c.events <- ev:
		return nil
	default:
		return ErrChannelFull
	}
}

func (c *Channel) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Hub is the process-wide registry of live channels keyed by user. A user
// may hold several channels at once (multiple tabs or devices). The hub is
// constructed once in main and passed to whoever needs it; it is never a
// package-level global.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Channel]struct{}
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*Channel]struct{}),
	}
}

// Register creates a channel for the user and adds it to the registry.
func (h *Hub) Register(userID string) *Channel {
	ch := &Channel{
		UserID: userID,
		events: make(chan Event, 16),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[userID]; !ok {
		h.channels[userID] = make(map[*Channel]struct{})
	}
	h.channels[userID][ch] = struct{}{}
	return ch
}

// Unregister removes exactly that channel and closes it. Calling it for a
// channel that was already removed is a no-op.
func (h *Hub) Unregister(ch *Channel) {
	if ch == nil {
		return
	}
	h.mu.Lock()
	if set, ok := h.channels[ch.UserID]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.channels, ch.UserID)
		}
	}
	h.mu.Unlock()
	ch.close()
}

// ChannelsFor returns the user's live channels. An empty result means the
// user is not currently connected, which is a normal outcome.
func (h *Hub) ChannelsFor(userID string) []*Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set, ok := h.channels[userID]
	if !ok {
		return nil
	}
	out := make([]*Channel, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	return out
}

// AllChannels returns every live channel. Used only by ephemeral broadcast.
func (h *Hub) AllChannels() []*Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Channel
	for _, set := range h.channels {
		for ch := range set {
			out = append(out, ch)
		}
	}
	return out
}

// ConnectionCount reports the number of live channels across all users.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.channels {
		n += len(set)
	}
	return n
}
