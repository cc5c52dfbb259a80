package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/roundsapp/rounds/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	auth       *services.AuthClient
	friends    services.FriendService
	search     services.SearchService
	courses    *services.CourseClient
	recognizer services.Recognizer
	api        *services.APIService
	engine     tasks.ImportEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Auth       *services.AuthClient
	Friends    services.FriendService
	Search     services.SearchService
	Courses    *services.CourseClient
	Recognizer services.Recognizer
	API        *services.APIService
	Engine     tasks.ImportEngine
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// deferredTokenSource delegates to the auth client at request time, so API
// clients built at startup observe logins and session resumes that happen
// later in the process.
type deferredTokenSource struct {
	auth *services.AuthClient
}

func (s deferredTokenSource) Token() (*oauth2.Token, error) {
	ts := s.auth.TokenSource()
	if ts == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return ts.Token()
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	var tokens oauth2.TokenSource
	if opts.Auth != nil {
		tokens = deferredTokenSource{auth: opts.Auth}
	}

	baseURL := opts.Config.API.BaseURL
	if opts.Friends == nil {
		opts.Friends = services.NewFriendClient(baseURL, tokens, opts.HTTPClient)
	}
	if opts.Search == nil {
		opts.Search = services.NewSearchClient(baseURL, tokens, opts.HTTPClient, 5)
	}
	if opts.Courses == nil {
		opts.Courses = services.NewCourseClient(baseURL, tokens, opts.HTTPClient)
	}
	if opts.Recognizer == nil {
		opts.Recognizer = services.NewOCRClient(opts.Config.OCR.BaseURL, opts.HTTPClient)
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(baseURL, tokens, opts.HTTPClient)
	}
	if opts.Engine == nil {
		opts.Engine = tasks.NewScorecardEngine(opts.Recognizer, opts.Courses, nil)
	}

	return &Runner{
		config:     opts.Config,
		auth:       opts.Auth,
		friends:    opts.Friends,
		search:     opts.Search,
		courses:    opts.Courses,
		recognizer: opts.Recognizer,
		api:        opts.API,
		engine:     opts.Engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger. Used by the TUI to redirect logs away
// from the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, friendsCommand, coursesCommand, rankingsCommand, tuiCommand, setupCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured local cache with migrations applied.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}
	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
