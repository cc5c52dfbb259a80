package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/roundsapp/rounds/internal/tasks"
)

type importProgressMsg tasks.ProgressUpdate

type importDoneMsg struct {
	result *tasks.ImportRunResult
	err    error
}

// ImportModel drives the scorecard import workflow in the terminal.
//
// The session state machine owns the status and counters; this model renders
// them and translates key presses into session transitions. The retry
// affordance only appears for failures classified as retryable.
type ImportModel struct {
	ctx          context.Context
	engine       tasks.ImportEngine
	opts         tasks.ImportRunOpts
	session      *tasks.ImportSession
	bar          progress.Model
	phase        tasks.Phase
	message      string
	progressChan chan tasks.ProgressUpdate
	result       *tasks.ImportRunResult
	err          error
	keys         keyMap
}

// NewImportModel creates an import model for one scorecard import run.
func NewImportModel(ctx context.Context, engine tasks.ImportEngine, opts tasks.ImportRunOpts) *ImportModel {
	return &ImportModel{
		ctx:     ctx,
		engine:  engine,
		opts:    opts,
		session: tasks.NewImportSession(),
		bar:     progress.New(progress.WithDefaultGradient()),
		keys:    newKeyMap(),
	}
}

// Session exposes the underlying state machine.
func (m *ImportModel) Session() *tasks.ImportSession {
	return m.session
}

// Init starts the import immediately.
func (m *ImportModel) Init() tea.Cmd {
	return m.start()
}

// Update handles progress events, completion, and retry/quit keys.
func (m *ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// start() performs the Failed → Running transition itself.
			if m.session.ShouldShowRetry() {
				m.err = nil
				m.result = nil
				m.message = ""
				m.phase = tasks.CheckRecognizer
				return m, m.start()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil

	case importProgressMsg:
		update := tasks.ProgressUpdate(msg)
		m.session.Observe(update.Step, update.Total)
		m.phase = update.Phase
		m.message = update.Message
		return m, m.waitForProgress()

	case importDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.progressChan = nil
		if msg.err != nil {
			m.session.Fail(msg.err.Error(), shared.IsRetryable(msg.err))
		} else {
			m.session.Succeed()
		}
		return m, nil

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View renders the session state: progress while running, a summary on
// success, and the error with an optional retry hint on failure.
func (m *ImportModel) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("Importing %s", m.opts.CourseName)))
	b.WriteString("\n\n")

	switch m.session.Status() {
	case tasks.ImportRunning:
		percent := 0.0
		if m.session.Total() > 0 {
			percent = float64(m.session.Processed()) / float64(m.session.Total())
		}
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString(fmt.Sprintf("\n\n%s (%d/%d)\n", m.phase, m.session.Processed(), m.session.Total()))
		if m.message != "" {
			b.WriteString(styles.help.Render(m.message))
			b.WriteString("\n")
		}

	case tasks.ImportSucceeded:
		b.WriteString(styles.ok.Render("Import complete"))
		if m.result != nil && m.result.Course != nil {
			b.WriteString(fmt.Sprintf("\n\n%s: %d holes, par %d\n",
				m.result.Course.Name(), m.result.HoleCount, m.result.Course.TotalPar()))
			if len(m.result.LowConfidence) > 0 {
				b.WriteString(styles.warn.Render(fmt.Sprintf("Check holes %v, the scan was unsure\n", m.result.LowConfidence)))
			}
		}
		b.WriteString("\n")
		b.WriteString(styles.help.Render("q to quit"))

	case tasks.ImportFailed:
		b.WriteString(styles.err.Render(fmt.Sprintf("Import failed: %s", m.session.LastError())))
		b.WriteString("\n\n")
		if m.session.ShouldShowRetry() {
			b.WriteString(styles.help.Render("r to retry, q to quit"))
		} else {
			b.WriteString(styles.help.Render("q to quit"))
		}

	default:
		b.WriteString(styles.help.Render("Starting..."))
	}

	return b.String()
}

func (m *ImportModel) start() tea.Cmd {
	if !m.session.Start() {
		return nil
	}

	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func(updates chan tasks.ProgressUpdate) {
		result, err := m.engine.Run(m.ctx, m.opts, updates)
		m.result = result
		m.err = err
		close(updates)
	}(m.progressChan)

	return m.waitForProgress()
}

func (m *ImportModel) waitForProgress() tea.Cmd {
	updates := m.progressChan
	return func() tea.Msg {
		if updates == nil {
			return importDoneMsg{result: m.result, err: m.err}
		}

		update, ok := <-updates
		if !ok {
			return importDoneMsg{result: m.result, err: m.err}
		}
		return importProgressMsg(update)
	}
}
