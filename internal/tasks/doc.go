// Package tasks orchestrates course imports with real-time progress reporting.
//
// # Import pipeline
//
// [ScorecardEngine.Run] performs a full import:
//   - checks the OCR proxy is reachable
//   - reads scorecard images from disk
//   - extracts hole data per image through [services.Recognizer], rate limited
//   - assembles and validates the hole layout (9 or 18 holes, par bounds)
//   - uploads the course through [services.CourseService]
//   - caches the result locally through [CourseCacher] (failures ignored)
//
// # Progress reporting
//
// Operations send [ProgressUpdate] values through a caller-owned channel.
// Sends never block: select with default drops updates when the consumer is
// behind. The step total is fixed before the first event so consumers can
// render a stable progress bar.
//
// # Session state machine
//
// [ImportSession] models the observable lifecycle of an import as seen by the
// UI: Idle → Running → Succeeded or Failed, with Failed → Running on retry.
// The session is deliberately decoupled from the engine; the owner feeds it
// progress events and the terminal outcome, making the state transitions
// testable without any I/O.
package tasks
