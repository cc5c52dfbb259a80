package tasks

import (
	"github.com/roundsapp/rounds/internal/shared"
)

// ImportStatus enumerates the states of an import session.
type ImportStatus int

const (
	ImportIdle ImportStatus = iota
	ImportRunning
	ImportFailed
	ImportSucceeded
)

func (s ImportStatus) String() string {
	switch s {
	case ImportIdle:
		return "idle"
	case ImportRunning:
		return "running"
	case ImportFailed:
		return "failed"
	case ImportSucceeded:
		return "succeeded"
	default:
		return ""
	}
}

// ImportSession tracks one course import attempt through the state machine
//
//	Idle → Running → {Succeeded | Failed};  Failed → Running (retry)
//
// Succeeded is terminal for the session; a new session starts via Reset.
// Counters only move while Running: processed is monotonically non-decreasing,
// never exceeds total, and total is fixed once known.
//
// ImportSession is not safe for concurrent use. All mutation happens on the
// UI update loop; the engine communicates through progress events that the
// owner applies via Observe/Succeed/Fail.
type ImportSession struct {
	id        string
	status    ImportStatus
	processed int
	total     int
	lastError string
	retryable bool
}

// NewImportSession creates an idle session.
func NewImportSession() *ImportSession {
	return &ImportSession{id: shared.GenerateID()}
}

// Start transitions the session to Running. Valid only from Idle or Failed;
// any other state leaves the session untouched and reports false.
// Starting resets both counters and clears the previous failure.
func (s *ImportSession) Start() bool {
	if s.status != ImportIdle && s.status != ImportFailed {
		return false
	}
	s.status = ImportRunning
	s.processed = 0
	s.total = 0
	s.lastError = ""
	s.retryable = false
	return true
}

// Retry re-runs Start semantics. Valid only from Failed; a no-op otherwise.
func (s *ImportSession) Retry() bool {
	if s.status != ImportFailed {
		return false
	}
	return s.Start()
}

// Observe applies a progress event. Ignored unless Running. The processed
// counter never decreases and never exceeds total; total is adopted on first
// sight and fixed afterwards (service contract).
func (s *ImportSession) Observe(processed, total int) {
	if s.status != ImportRunning {
		return
	}

	if s.total == 0 && total > 0 {
		s.total = total
	}

	if processed > s.processed {
		s.processed = processed
	}
	if s.total > 0 && s.processed > s.total {
		s.processed = s.total
	}
}

// Succeed transitions Running → Succeeded. Ignored in any other state.
func (s *ImportSession) Succeed() {
	if s.status != ImportRunning {
		return
	}
	s.status = ImportSucceeded
}

// Fail transitions Running → Failed, recording the message verbatim and
// whether a retry affordance should be offered. Ignored unless Running.
func (s *ImportSession) Fail(message string, retryable bool) {
	if s.status != ImportRunning {
		return
	}
	s.status = ImportFailed
	s.lastError = message
	s.retryable = retryable
}

// Reset abandons the session and returns a fresh idle one.
func (s *ImportSession) Reset() *ImportSession {
	return NewImportSession()
}

func (s *ImportSession) ID() string { return s.id }

func (s *ImportSession) Status() ImportStatus { return s.status }

func (s *ImportSession) Processed() int { return s.processed }

func (s *ImportSession) Total() int { return s.total }

// LastError returns the failure message of the most recent Fail, empty
// otherwise.
func (s *ImportSession) LastError() string { return s.lastError }

// ShouldShowRetry reports whether the UI should offer a retry action:
// only in Failed, and only when the failure was classified retryable.
func (s *ImportSession) ShouldShowRetry() bool {
	return s.status == ImportFailed && s.retryable
}
