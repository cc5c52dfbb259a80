package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roundsapp/rounds/internal/formatter"
	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/urfave/cli/v3"
)

// Rankings prints the global leaderboard.
func (r *Runner) Rankings(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	entries, err := r.courses.Leaderboard(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if format := cmd.String("export"); format != "" {
		return r.exportLeaderboard(entries, format, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		return r.writePlain("Nobody ranked yet\n")
	}
	for _, entry := range entries {
		r.writePlain("#%-3d %s (@%s)  elo %d  hcp %.1f\n",
			entry.Rank, entry.FullName, entry.Username, entry.Elo, entry.Handicap)
	}
	return nil
}

// exportLeaderboard renders entries in the requested format, to a file when an
// output path is given and to the runner's output otherwise.
func (r *Runner) exportLeaderboard(entries []models.LeaderboardEntry, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = formatter.LeaderboardToCSV(entries)
	case "markdown", "md":
		data, err = formatter.LeaderboardToMarkdown(entries)
	case "text", "txt":
		data, err = formatter.LeaderboardToText(entries)
	default:
		return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if path == "" {
		_, err = r.output.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return r.writePlain("Wrote %s\n", path)
}
