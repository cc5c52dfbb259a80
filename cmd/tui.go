package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/roundsapp/rounds/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/rounds-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	deps := ui.Deps{
		Auth:    r.auth,
		Friends: r.friends,
		Search:  r.search,
		Home:    r.courses,
		Config:  r.config,
	}

	model := ui.NewModel(ctx, deps)

	// Resume a persisted session so the login view can be skipped, and
	// connect the event feed for live friend and match updates.
	if session, err := r.loadSession(ctx); err == nil && session != nil {
		if user, err := r.auth.Me(ctx); err == nil {
			model = model.WithUser(user)

			feed := services.NewRealtimeFeed(r.config.API.RealtimeURL)
			if err := feed.Connect(ctx, session.AccessToken()); err != nil {
				r.logger.Warn("realtime feed unavailable", "error", err)
			} else {
				deps.Feed = feed
				model = ui.NewModel(ctx, deps).WithUser(user)
				defer feed.Close()
			}
		}
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
