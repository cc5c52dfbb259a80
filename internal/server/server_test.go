package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

type stubExchanger struct {
	token *oauth2.Token
	err   error
	code  string
}

func (s *stubExchanger) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	s.code = code
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func TestMuxRouter(t *testing.T) {
	t.Run("Routes By Method", func(t *testing.T) {
		router := NewMuxRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "pong")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for wrong method, got %d", rec.Code)
		}
	})

	t.Run("Applies Middleware In Order", func(t *testing.T) {
		var calls []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					calls = append(calls, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewMuxRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
			t.Errorf("unexpected middleware order: %v", calls)
		}
	})

	t.Run("Logging Middleware Passes Through", func(t *testing.T) {
		router := NewMuxRouter()
		router.Use(Logging(log.New(io.Discard)))
		router.Handle(http.MethodGet, "/ok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected handler status to pass through, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := NewMuxRouter()
	router.Handler(&HealthHandler{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body, got %q", rec.Body.String())
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body)
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Successful Exchange", func(t *testing.T) {
		exchanger := &stubExchanger{token: &oauth2.Token{AccessToken: "access"}}
		handler := NewCallbackHandler(exchanger, "state-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-123&code=auth-code", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if exchanger.code != "auth-code" {
			t.Errorf("expected code auth-code passed to exchanger, got %q", exchanger.code)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.Token.AccessToken != "access" {
			t.Errorf("expected access token, got %q", result.Token.AccessToken)
		}
	})

	t.Run("Rejects Bad State", func(t *testing.T) {
		handler := NewCallbackHandler(&stubExchanger{}, "state-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=auth-code", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected state validation error")
		}
	})

	t.Run("Reports Provider Error", func(t *testing.T) {
		handler := NewCallbackHandler(&stubExchanger{}, "state-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-123&error=access_denied&error_description=denied", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected authorization error")
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		exchanger := &stubExchanger{token: &oauth2.Token{AccessToken: "access"}}
		handler := NewCallbackHandler(exchanger, "state-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-123&code=auth-code", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-123&code=auth-code", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected replay to be rejected, got %d", rec.Code)
		}
	})
}
