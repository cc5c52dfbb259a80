// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "sso",
				Usage:  "Sign in through the browser",
				Action: r.AuthSSO,
			},
			{
				Name:   "status",
				Usage:  "Show the persisted session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the persisted session",
				Action: r.AuthLogout,
			},
		},
	}
}

// friendsCommand handles the social graph
func friendsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "friends",
		Aliases: []string{"social"},
		Usage:   "Friends and friend requests",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List current friends",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FriendsList,
			},
			{
				Name:  "requests",
				Usage: "List incoming friend requests",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FriendsRequests,
			},
			{
				Name:  "add",
				Usage: "Send a friend request to a user",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "user"},
				},
				Action: r.FriendsAdd,
			},
			{
				Name:  "accept",
				Usage: "Accept an incoming friend request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "request"},
				},
				Action: r.FriendsAccept,
			},
			{
				Name:  "decline",
				Usage: "Decline an incoming friend request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "request"},
				},
				Action: r.FriendsDecline,
			},
			{
				Name:  "block",
				Usage: "Block a user",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "user"},
				},
				Action: r.FriendsBlock,
			},
			{
				Name:  "search",
				Usage: "Search golfers by name or username",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FriendsSearch,
			},
		},
	}
}

// coursesCommand handles course listing and scorecard imports
func coursesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "Course catalog and scorecard imports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List courses known to the backend",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CoursesList,
			},
			{
				Name:  "show",
				Usage: "Show a course with its hole layout",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "export",
						Usage: "Export format (csv or markdown)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, stdout when omitted",
					},
				},
				Action: r.CoursesShow,
			},
			{
				Name:  "import",
				Usage: "Import a course from scorecard images",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Course name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "city",
						Usage: "Course city",
					},
					&cli.StringFlag{
						Name:  "state",
						Usage: "Course state or region",
					},
					&cli.StringSliceFlag{
						Name:     "image",
						Aliases:  []string{"i"},
						Usage:    "Scorecard image path (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "holes",
						Usage: "Expected hole count",
						Value: 18,
					},
					&cli.BoolFlag{
						Name:  "interactive",
						Usage: "Run the import with a progress UI",
					},
				},
				Action: r.CoursesImport,
			},
			{
				Name:  "cached",
				Usage: "List courses from the local cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Filter by course name",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CoursesCached,
			},
		},
	}
}

// rankingsCommand shows the elo leaderboard
func rankingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "rankings",
		Aliases: []string{"leaderboard"},
		Usage:   "Show the elo leaderboard",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to return",
				Value: 25,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Export format (csv, markdown or text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, stdout when omitted",
			},
		},
		Action: r.Rankings,
	}
}

// tuiCommand returns the top-level TUI command for interactive use.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local cache and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// apiCommand handles direct API calls for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}
