package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/roundsapp/rounds/internal/shared"
)

// wsServer upgrades incoming connections and hands them to fn.
func wsServer(t *testing.T, fn func(conn *websocket.Conn, r *http.Request)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade: %v", err)
			return
		}
		defer conn.Close()
		fn(conn, r)
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestRealtimeFeed(t *testing.T) {
	t.Run("Connect Requires A Token", func(t *testing.T) {
		feed := NewRealtimeFeed("ws://localhost:9")

		err := feed.Connect(context.Background(), "")
		if err == nil {
			t.Fatal("expected error for empty token")
		}
		if shared.IsRetryable(err) {
			t.Error("expected missing token to be terminal")
		}
	})

	t.Run("Unreachable Server Is Transient", func(t *testing.T) {
		feed := NewRealtimeFeed("ws://localhost:1/events")

		err := feed.Connect(context.Background(), "access-token")
		if err == nil {
			t.Fatal("expected error for unreachable server")
		}
		if !shared.IsRetryable(err) {
			t.Error("expected a connection failure to be retryable")
		}
	})

	t.Run("Delivers Events", func(t *testing.T) {
		server := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer access-token" {
				t.Errorf("expected bearer header, got %q", got)
			}

			conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"friend_request.created","request":{"id":"req-1","status":"pending"}}`))
			conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
			conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"match.completed","match":{"id":"m1","my_score":82,"their_score":85}}`))

			// Hold the connection until the client hangs up.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})
		defer server.Close()

		feed := NewRealtimeFeed(wsURL(server))
		if err := feed.Connect(context.Background(), "access-token"); err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		defer feed.Close()

		want := []EventKind{EventFriendRequestCreated, EventMatchCompleted}
		for _, kind := range want {
			select {
			case event := <-feed.Events():
				if event.Kind != kind {
					t.Errorf("expected %s, got %s", kind, event.Kind)
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out waiting for %s", kind)
			}
		}
	})

	t.Run("Channel Closes When The Server Hangs Up", func(t *testing.T) {
		server := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
			// Close immediately; an empty read loop follows the upgrade.
		})
		defer server.Close()

		feed := NewRealtimeFeed(wsURL(server))
		if err := feed.Connect(context.Background(), "access-token"); err != nil {
			t.Fatalf("failed to connect: %v", err)
		}

		select {
		case _, open := <-feed.Events():
			if open {
				t.Error("expected channel to close, got an event")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for channel close")
		}
	})

	t.Run("Watcher Exits With The Read Loop", func(t *testing.T) {
		server := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
			// Close immediately so the read loop ends on its own.
		})
		defer server.Close()

		before := runtime.NumGoroutine()

		feed := NewRealtimeFeed(wsURL(server))
		if err := feed.Connect(context.Background(), "access-token"); err != nil {
			t.Fatalf("failed to connect: %v", err)
		}

		select {
		case _, open := <-feed.Events():
			if open {
				t.Error("expected channel to close, got an event")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for channel close")
		}

		// The live context must not pin the watcher once the connection
		// is gone.
		deadline := time.After(2 * time.Second)
		for runtime.NumGoroutine() > before {
			select {
			case <-deadline:
				t.Fatalf("goroutines did not settle: started with %d, have %d", before, runtime.NumGoroutine())
			case <-time.After(10 * time.Millisecond):
			}
		}
	})

	t.Run("Cancelled Context Stops The Read Loop", func(t *testing.T) {
		server := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		feed := NewRealtimeFeed(wsURL(server))
		if err := feed.Connect(ctx, "access-token"); err != nil {
			t.Fatalf("failed to connect: %v", err)
		}

		cancel()

		select {
		case _, open := <-feed.Events():
			if open {
				t.Error("expected channel to close after cancellation")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for channel close")
		}
	})

	t.Run("Close Before Connect Is A No-Op", func(t *testing.T) {
		feed := NewRealtimeFeed("ws://localhost:9")
		if err := feed.Close(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
