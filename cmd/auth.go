package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/repositories"
	"github.com/roundsapp/rounds/internal/server"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/urfave/cli/v3"
)

// ssoTimeout bounds how long the CLI waits for the browser redirect.
const ssoTimeout = 3 * time.Minute

// AuthLogin signs in with email and password and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	creds, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	r.logger.Info("signed in", "user", creds.UserID)

	if err := r.saveSession(creds); err != nil {
		r.logger.Warn("could not persist session", "error", err)
	}

	user, err := r.auth.Me(ctx)
	if err != nil {
		return r.writePlain("Signed in\n")
	}
	return r.writePlain("Signed in as %s (@%s)\n", user.FullName, user.Username)
}

// AuthSSO signs in through the browser using the authorization code flow.
//
// A temporary HTTP server on the configured local port receives the redirect,
// exchanges the code, and the CLI persists the resulting session.
func (r *Runner) AuthSSO(ctx context.Context, cmd *cli.Command) error {
	state := shared.GenerateID()
	handler := server.NewCallbackHandler(r.auth, state)

	router := server.NewMuxRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)
	router.Handler(&server.HealthHandler{})

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("callback server failed", "error", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := r.auth.AuthURL(state)
	r.writePlain("Opening browser for sign in...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.writePlain("Could not open a browser, visit:\n%s\n", authURL)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		creds := &services.Credentials{
			AccessToken:  result.Token.AccessToken,
			RefreshToken: result.Token.RefreshToken,
		}
		if !result.Token.Expiry.IsZero() {
			creds.ExpiresAt = result.Token.Expiry.Unix()
		}
		if claims, err := r.auth.Claims(); err == nil {
			creds.UserID = claims.Subject
		}
		if err := r.saveSession(creds); err != nil {
			r.logger.Warn("could not persist session", "error", err)
		}
		return r.writePlain("Signed in\n")

	case <-time.After(ssoTimeout):
		return fmt.Errorf("%w: timed out waiting for browser sign in", shared.ErrAuthFailed)

	case <-ctx.Done():
		return ctx.Err()
	}
}

// AuthStatus reports the persisted session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	session, err := r.loadSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return r.writePlain("Not signed in\n")
	}

	r.writePlain("Signed in as %s\n", session.Email())
	if session.Expired() {
		r.writePlain("Session expired, will refresh on next request\n")
	} else if !session.ExpiresAt().IsZero() {
		r.writePlain("Session valid until %s\n", session.ExpiresAt().Format(time.RFC1123))
	}

	if user, err := r.auth.Me(ctx); err == nil {
		r.writePlain("Handicap %.1f, elo %d\n", user.Handicap, user.Elo)
	}
	return nil
}

// AuthLogout discards all persisted sessions.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewSessionRepository(db).DeleteAll(); err != nil {
		return err
	}
	return r.writePlain("Signed out\n")
}

// saveSession persists credentials in the local cache.
func (r *Runner) saveSession(creds *services.Credentials) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	session := models.NewSession(0, creds.UserID, creds.Email, creds.AccessToken)
	session.SetRefreshToken(creds.RefreshToken)
	if creds.ExpiresAt > 0 {
		session.SetExpiresAt(time.Unix(creds.ExpiresAt, 0))
	}

	return repositories.NewSessionRepository(db).Create(session)
}

// loadSession resumes the most recent persisted session, if any. Commands
// that need authentication call this before hitting the API.
func (r *Runner) loadSession(ctx context.Context) (*models.Session, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	session, err := repositories.NewSessionRepository(db).Latest()
	if err != nil || session == nil {
		return nil, err
	}

	r.auth.Resume(ctx, session.AccessToken(), session.RefreshToken(), session.ExpiresAt())
	return session, nil
}

// requireSession resumes the persisted session and fails when there is none.
func (r *Runner) requireSession(ctx context.Context) error {
	session, err := r.loadSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return shared.ErrNotAuthenticated
	}
	return nil
}
