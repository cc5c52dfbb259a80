// WebSocket client for the backend's realtime event feed.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

// EventKind enumerates the realtime event types the client understands.
type EventKind string

const (
	EventFriendRequestCreated  EventKind = "friend_request.created"
	EventFriendRequestAnswered EventKind = "friend_request.answered"
	EventMatchCompleted        EventKind = "match.completed"
)

// Event is a single realtime notification from the backend.
type Event struct {
	Kind      EventKind             `json:"kind"`
	Request   *models.FriendRequest `json:"request,omitempty"`
	Match     *models.MatchSummary  `json:"match,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// RealtimeFeed maintains a WebSocket subscription to the backend event
// stream. Events arrive on the channel returned by Events; the feed closes
// the channel when the connection drops or the context is cancelled.
type RealtimeFeed struct {
	url    string
	dialer *websocket.Dialer
	conn   *websocket.Conn
	events chan Event
}

// NewRealtimeFeed creates a feed for the given websocket URL.
func NewRealtimeFeed(url string) *RealtimeFeed {
	return &RealtimeFeed{
		url:    url,
		dialer: websocket.DefaultDialer,
		events: make(chan Event, 16),
	}
}

// Connect dials the feed with the given bearer token and starts the read
// loop. The read loop exits when the connection drops or ctx is cancelled.
func (r *RealtimeFeed) Connect(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return shared.Terminal(shared.ErrNotAuthenticated)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+accessToken)

	conn, _, err := r.dialer.DialContext(ctx, r.url, headers)
	if err != nil {
		return shared.Transient(fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err))
	}
	r.conn = conn

	go r.readLoop(ctx)
	return nil
}

// Events returns the channel realtime events arrive on.
func (r *RealtimeFeed) Events() <-chan Event {
	return r.events
}

// Close tears down the connection. The events channel closes once the read
// loop observes the closed connection.
func (r *RealtimeFeed) Close() error {
	if r.conn == nil {
		return nil
	}
	r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}

func (r *RealtimeFeed) readLoop(ctx context.Context) {
	done := make(chan struct{})
	defer close(r.events)
	defer close(done)

	// The watcher must not outlive the read loop when the connection ends
	// on its own.
	go func() {
		select {
		case <-ctx.Done():
			r.conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			// Skip malformed frames; the stream itself is still healthy.
			continue
		}

		select {
		case r.events <- event:
		default:
			// Drop when the consumer is behind; events are advisory and the
			// UI refetches authoritative state on focus anyway.
		}
	}
}
