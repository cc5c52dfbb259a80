package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/roundsapp/rounds/internal/shared"
)

func TestSearchClient(t *testing.T) {
	t.Run("Empty Query Skips The Network", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := NewSearchClient(server.URL, nil, nil, 0)

		for _, query := range []string{"", "   ", "\t\n"} {
			results, err := client.SearchUsers(context.Background(), query)
			if err != nil {
				t.Fatalf("expected no error for query %q, got %v", query, err)
			}
			if results != nil {
				t.Errorf("expected nil results for query %q", query)
			}
		}

		if calls.Load() != 0 {
			t.Errorf("expected no requests, got %d", calls.Load())
		}
	})

	t.Run("Queries And Decodes Results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/search" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("q"); got != "jordan b" {
				t.Errorf("expected query 'jordan b', got %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{
					{"id": "u1", "full_name": "Jordan Banks", "username": "jbanks", "handicap": 8.4, "elo": 1450, "friendship_status": "none"},
				},
			})
		}))
		defer server.Close()

		client := NewSearchClient(server.URL, nil, nil, 0)

		// Leading and trailing whitespace is trimmed before the request.
		results, err := client.SearchUsers(context.Background(), "  jordan b  ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].ID != "u1" {
			t.Errorf("expected result u1, got %s", results[0].ID)
		}
		if results[0].Elo != 1450 {
			t.Errorf("expected elo 1450, got %d", results[0].Elo)
		}
	})

	t.Run("Empty Result Set Is Not An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		}))
		defer server.Close()

		client := NewSearchClient(server.URL, nil, nil, 0)

		results, err := client.SearchUsers(context.Background(), "zz")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("Cancelled Context Fails Transient", func(t *testing.T) {
		client := NewSearchClient("http://localhost", nil, nil, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.SearchUsers(ctx, "jordan")
		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if !shared.IsRetryable(err) {
			t.Error("expected cancellation to be retryable")
		}
	})

	t.Run("Server Error Is Transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewSearchClient(server.URL, nil, nil, 0)

		_, err := client.SearchUsers(context.Background(), "jordan")
		if err == nil {
			t.Fatal("expected error for 503 response")
		}
		if !shared.IsRetryable(err) {
			t.Error("expected a 503 failure to be retryable")
		}
	})
}
