package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roundsapp/rounds/internal/shared"
)

// mintToken builds a signed JWT carrying the given subject. The client never
// verifies signatures, so the signing key is arbitrary.
func mintToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return signed
}

func newTestAuthClient(t *testing.T, baseURL, tokenURL string) *AuthClient {
	t.Helper()
	auth, err := NewAuthClient(AuthOpts{
		BaseURL:  baseURL,
		AuthURL:  tokenURL + "/authorize",
		TokenURL: tokenURL,
		ClientID: "test-client",
	})
	if err != nil {
		t.Fatalf("failed to create auth client: %v", err)
	}
	return auth
}

func TestAuthClient(t *testing.T) {
	t.Run("NewAuthClient", func(t *testing.T) {
		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewAuthClient(AuthOpts{TokenURL: "http://localhost/token"})
			if err == nil {
				t.Error("expected error for missing client_id")
			}
		})

		t.Run("Missing Token URL", func(t *testing.T) {
			_, err := NewAuthClient(AuthOpts{ClientID: "test-client"})
			if err == nil {
				t.Error("expected error for missing token_url")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Rejects Empty Credentials Locally", func(t *testing.T) {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL+"/oauth/token")

			_, err := auth.Login(context.Background(), "", "secret")
			if err == nil {
				t.Fatal("expected error for empty email")
			}
			if shared.IsRetryable(err) {
				t.Error("expected validation failure to be terminal")
			}

			_, err = auth.Login(context.Background(), "golfer@example.com", "")
			if err == nil {
				t.Fatal("expected error for empty password")
			}
			if called {
				t.Error("expected no network call for empty credentials")
			}
		})

		t.Run("Password Grant Success", func(t *testing.T) {
			accessToken := mintToken(t, "user-42")
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if r.FormValue("grant_type") != "password" {
					t.Errorf("expected password grant, got %s", r.FormValue("grant_type"))
				}
				if r.FormValue("username") != "golfer@example.com" {
					t.Errorf("unexpected username %s", r.FormValue("username"))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"access_token":  accessToken,
					"refresh_token": "refresh-1",
					"token_type":    "Bearer",
					"expires_in":    3600,
				})
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL)

			creds, err := auth.Login(context.Background(), "golfer@example.com", "secret")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if creds.Email != "golfer@example.com" {
				t.Errorf("expected email to carry over, got %s", creds.Email)
			}
			if creds.UserID != "user-42" {
				t.Errorf("expected user ID from JWT subject, got %s", creds.UserID)
			}
			if creds.RefreshToken != "refresh-1" {
				t.Errorf("expected refresh token, got %s", creds.RefreshToken)
			}
			if creds.ExpiresAt == 0 {
				t.Error("expected expiry to be recorded")
			}
			if auth.TokenSource() == nil {
				t.Error("expected token source after login")
			}
		})

		t.Run("Rejected Credentials Are Terminal", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL)

			_, err := auth.Login(context.Background(), "golfer@example.com", "wrong")
			if err == nil {
				t.Fatal("expected error for rejected credentials")
			}
			if shared.IsRetryable(err) {
				t.Error("expected a 401 rejection to be terminal")
			}
		})

		t.Run("Server Failure Is Transient", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL)

			_, err := auth.Login(context.Background(), "golfer@example.com", "secret")
			if err == nil {
				t.Fatal("expected error for 502 response")
			}
			if !shared.IsRetryable(err) {
				t.Error("expected a 502 failure to be retryable")
			}
		})
	})

	t.Run("Refresh", func(t *testing.T) {
		t.Run("Missing Refresh Token", func(t *testing.T) {
			auth := newTestAuthClient(t, "http://localhost", "http://localhost/token")

			_, err := auth.Refresh(context.Background(), "")
			if err == nil {
				t.Fatal("expected error for empty refresh token")
			}
			if shared.IsRetryable(err) {
				t.Error("expected missing refresh token to be terminal")
			}
		})

		t.Run("Exchanges Refresh Token", func(t *testing.T) {
			accessToken := mintToken(t, "user-42")
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				r.ParseForm()
				if r.FormValue("grant_type") != "refresh_token" {
					t.Errorf("expected refresh_token grant, got %s", r.FormValue("grant_type"))
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"access_token": accessToken,
					"token_type":   "Bearer",
					"expires_in":   3600,
				})
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL)

			creds, err := auth.Refresh(context.Background(), "refresh-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if creds.AccessToken != accessToken {
				t.Error("expected fresh access token")
			}
		})
	})

	t.Run("Resume", func(t *testing.T) {
		auth := newTestAuthClient(t, "http://localhost", "http://localhost/token")

		if auth.TokenSource() != nil {
			t.Fatal("expected no token source before resume")
		}

		auth.Resume(context.Background(), mintToken(t, "user-42"), "refresh-1", time.Now().Add(time.Hour))

		if auth.TokenSource() == nil {
			t.Error("expected token source after resume")
		}

		claims, err := auth.Claims()
		if err != nil {
			t.Fatalf("expected claims after resume, got %v", err)
		}
		if claims.Subject != "user-42" {
			t.Errorf("expected subject user-42, got %s", claims.Subject)
		}
	})

	t.Run("AuthURL", func(t *testing.T) {
		auth := newTestAuthClient(t, "http://localhost", "http://localhost/oauth")

		authURL := auth.AuthURL("state-token")
		if !strings.Contains(authURL, "state=state-token") {
			t.Errorf("expected state in auth URL, got %s", authURL)
		}
		if !strings.Contains(authURL, "client_id=test-client") {
			t.Errorf("expected client_id in auth URL, got %s", authURL)
		}
	})

	t.Run("Me", func(t *testing.T) {
		t.Run("Requires A Session", func(t *testing.T) {
			auth := newTestAuthClient(t, "http://localhost", "http://localhost/token")

			_, err := auth.Me(context.Background())
			if err == nil {
				t.Fatal("expected error without a session")
			}
			if shared.IsRetryable(err) {
				t.Error("expected missing session to be terminal")
			}
		})

		t.Run("Returns Profile With Self Status", func(t *testing.T) {
			accessToken := mintToken(t, "user-42")
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/me" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
					t.Error("expected bearer authorization header")
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"id":        "user-42",
					"full_name": "Jordan Banks",
					"username":  "jbanks",
					"handicap":  8.4,
					"elo":       1450,
				})
			}))
			defer server.Close()

			auth := newTestAuthClient(t, server.URL, server.URL+"/oauth/token")
			auth.Resume(context.Background(), accessToken, "", time.Now().Add(time.Hour))

			me, err := auth.Me(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if me.Username != "jbanks" {
				t.Errorf("expected username jbanks, got %s", me.Username)
			}
			if me.Handicap != 8.4 {
				t.Errorf("expected handicap 8.4, got %v", me.Handicap)
			}
			if me.FriendshipStatus != "self" {
				t.Errorf("expected self friendship status, got %s", me.FriendshipStatus)
			}
		})
	})
}
