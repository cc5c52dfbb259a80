package main

import (
	"context"
	"errors"
	"os"

	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	auth, err := services.NewAuthClient(services.AuthOpts{
		BaseURL:      config.API.BaseURL,
		AuthURL:      config.Auth.AuthURL,
		TokenURL:     config.Auth.TokenURL,
		ClientID:     config.Auth.ClientID,
		ClientSecret: config.Auth.ClientSecret,
		RedirectURI:  config.Auth.RedirectURI,
	})
	if err != nil {
		logger.Fatalf("invalid auth configuration: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Auth:   auth,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "rounds",
		Usage:    "Golf matchmaking from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error("not signed in, run 'rounds auth login' first")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
