package tasks

import (
	"fmt"

	"github.com/roundsapp/rounds/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number
	Total   int    // Total steps in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CheckRecognizer Phase = iota
	ReadScorecards
	RecognizeHoles
	AssembleCourse
	UploadCourse
	CacheCourse
)

func (p Phase) String() string {
	switch p {
	case CheckRecognizer:
		return "check_recognizer"
	case ReadScorecards:
		return "read_scorecards"
	case RecognizeHoles:
		return "recognize_holes"
	case AssembleCourse:
		return "assemble_course"
	case UploadCourse:
		return "upload_course"
	case CacheCourse:
		return "cache_course"
	default:
		return ""
	}
}

func checkingRecognizerUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckRecognizer,
		Step:    0,
		Total:   total,
		Message: "Checking scorecard recognition service...",
	}
}

func readScorecardsUpdate(step, total int, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadScorecards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found %d scorecard image(s)", count),
	}
}

func recognizeUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecognizeHoles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reading %s...", step, total, name),
	}
}

func assembleUpdate(step, total int, holes int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AssembleCourse,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Assembling course layout (%d holes)...", holes),
	}
}

func uploadUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadCourse,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Uploading '%s'...", name),
	}
}

func uploadedUpdate(step, total int, course *models.Course) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadCourse,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Course created: %s (ID: %s)", course.Name(), course.RemoteID()),
		Data:    course,
	}
}

func cacheUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheCourse,
		Step:    step,
		Total:   total,
		Message: "Caching course locally...",
	}
}
