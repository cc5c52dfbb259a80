package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
)

type mockRecognizer struct {
	healthErr   error
	extractErr  error
	extractions map[int]*services.ScorecardExtraction // keyed by call index
	extractCall int
}

func (m *mockRecognizer) Health(ctx context.Context) error {
	return m.healthErr
}

func (m *mockRecognizer) Recognize(ctx context.Context, image []byte) ([]services.Detection, error) {
	return nil, nil
}

func (m *mockRecognizer) ExtractHoles(ctx context.Context, image []byte, expected int) (*services.ScorecardExtraction, error) {
	call := m.extractCall
	m.extractCall++
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return m.extractions[call], nil
}

type mockCourseService struct {
	createErr error
	createdID string
	created   *models.Course
}

func (m *mockCourseService) Courses(ctx context.Context) ([]services.CourseSummary, error) {
	return nil, nil
}

func (m *mockCourseService) Course(ctx context.Context, id string) (*models.Course, error) {
	return nil, nil
}

func (m *mockCourseService) CreateCourse(ctx context.Context, course *models.Course) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = course
	return m.createdID, nil
}

type mockCacher struct {
	cached []*models.Course
	err    error
}

func (m *mockCacher) CacheCourse(course *models.Course) error {
	m.cached = append(m.cached, course)
	return m.err
}

// nineHoles fabricates a consistent par-4 extraction for one scorecard page.
func nineHoles(confidence float64) *services.ScorecardExtraction {
	scores := make([]int, 9)
	for i := range scores {
		scores[i] = 4
	}
	return &services.ScorecardExtraction{
		Scores:     scores,
		Total:      36,
		Confidence: confidence,
		HolesFound: 9,
	}
}

func writeScorecards(t *testing.T, count int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("page%d.png", i+1))
		if err := os.WriteFile(path, []byte("fake image"), 0644); err != nil {
			t.Fatalf("failed to write scorecard fixture: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestScorecardEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Run", func(t *testing.T) {
		t.Run("Full Import", func(t *testing.T) {
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9), 1: nineHoles(0.9)},
			}
			courses := &mockCourseService{createdID: "course-123"}
			cache := &mockCacher{}
			engine := NewScorecardEngine(recognizer, courses, cache)

			progress := make(chan ProgressUpdate, 50)
			result, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Pebble Creek",
				City:       "Austin",
				State:      "TX",
				Paths:      writeScorecards(t, 2),
				HoleCount:  18,
			}, progress)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.Course == nil {
				t.Fatal("expected assembled course")
			}
			if result.Course.RemoteID() != "course-123" {
				t.Errorf("expected remote ID from service, got %q", result.Course.RemoteID())
			}
			if result.HoleCount != 18 {
				t.Errorf("expected 18 holes, got %d", result.HoleCount)
			}
			if len(result.LowConfidence) != 0 {
				t.Errorf("expected no low-confidence holes, got %v", result.LowConfidence)
			}
			if len(cache.cached) != 1 {
				t.Errorf("expected course cached once, got %d", len(cache.cached))
			}
		})

		t.Run("Progress Counters Are Monotonic", func(t *testing.T) {
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9), 1: nineHoles(0.9)},
			}
			engine := NewScorecardEngine(recognizer, &mockCourseService{createdID: "c"}, nil)

			progress := make(chan ProgressUpdate, 50)
			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Pebble Creek",
				Paths:      writeScorecards(t, 2),
				HoleCount:  18,
			}, progress)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(progress)

			session := NewImportSession()
			session.Start()
			prev := 0
			for update := range progress {
				session.Observe(update.Step, update.Total)
				if session.Processed() < prev {
					t.Fatalf("processed decreased from %d to %d", prev, session.Processed())
				}
				if session.Total() > 0 && session.Processed() > session.Total() {
					t.Fatalf("processed %d exceeds total %d", session.Processed(), session.Total())
				}
				prev = session.Processed()
			}
			session.Succeed()
			if session.Status() != ImportSucceeded {
				t.Errorf("expected succeeded, got %v", session.Status())
			}
		})

		t.Run("Low Confidence Pages Flag Their Holes", func(t *testing.T) {
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9), 1: nineHoles(0.4)},
			}
			engine := NewScorecardEngine(recognizer, &mockCourseService{createdID: "c"}, nil)

			result, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Muni North",
				Paths:      writeScorecards(t, 2),
				HoleCount:  18,
			}, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.LowConfidence) != 9 {
				t.Fatalf("expected 9 flagged holes, got %v", result.LowConfidence)
			}
			if result.LowConfidence[0] != 10 || result.LowConfidence[8] != 18 {
				t.Errorf("expected back-nine holes flagged, got %v", result.LowConfidence)
			}
		})

		t.Run("Missing Name", func(t *testing.T) {
			engine := NewScorecardEngine(&mockRecognizer{}, &mockCourseService{}, nil)
			_, err := engine.Run(ctx, ImportRunOpts{Paths: []string{"x.png"}}, nil)
			if err == nil {
				t.Fatal("expected error for missing course name")
			}
			if shared.IsRetryable(err) {
				t.Error("validation failure must be terminal")
			}
		})

		t.Run("Missing Image File", func(t *testing.T) {
			engine := NewScorecardEngine(&mockRecognizer{}, &mockCourseService{}, nil)
			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Nowhere",
				Paths:      []string{"/does/not/exist.png"},
			}, nil)
			if err == nil {
				t.Fatal("expected error for missing image")
			}
			if shared.IsRetryable(err) {
				t.Error("missing file must be terminal")
			}
		})

		t.Run("Recognizer Unavailable Is Retryable", func(t *testing.T) {
			recognizer := &mockRecognizer{
				healthErr: shared.Transient(shared.ErrServiceUnavailable),
			}
			engine := NewScorecardEngine(recognizer, &mockCourseService{}, nil)

			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Pebble Creek",
				Paths:      writeScorecards(t, 1),
				HoleCount:  9,
			}, nil)
			if err == nil {
				t.Fatal("expected error when recognizer is down")
			}
			if !shared.IsRetryable(err) {
				t.Error("recognizer outage must be retryable")
			}
		})

		t.Run("Wrong Reading Count", func(t *testing.T) {
			short := nineHoles(0.9)
			short.Scores = short.Scores[:5]
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: short},
			}
			engine := NewScorecardEngine(recognizer, &mockCourseService{}, nil)

			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Short Card",
				Paths:      writeScorecards(t, 1),
				HoleCount:  9,
			}, nil)
			if err == nil {
				t.Fatal("expected error for incomplete scorecard")
			}
			if !errors.Is(err, shared.ErrScorecardUnread) {
				t.Errorf("expected ErrScorecardUnread, got %v", err)
			}
			if shared.IsRetryable(err) {
				t.Error("incomplete scorecard must be terminal")
			}
		})

		t.Run("Upload Failure Preserves Classification", func(t *testing.T) {
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9)},
			}
			courses := &mockCourseService{
				createErr: shared.Transient(fmt.Errorf("%w: status 503", shared.ErrAPIRequest)),
			}
			engine := NewScorecardEngine(recognizer, courses, nil)

			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Pebble Creek",
				Paths:      writeScorecards(t, 1),
				HoleCount:  9,
			}, nil)
			if err == nil {
				t.Fatal("expected upload error")
			}
			if !shared.IsRetryable(err) {
				t.Error("5xx upload failure must stay retryable")
			}
		})

		t.Run("Cache Failure Does Not Fail Import", func(t *testing.T) {
			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9)},
			}
			cache := &mockCacher{err: fmt.Errorf("disk full")}
			engine := NewScorecardEngine(recognizer, &mockCourseService{createdID: "c"}, cache)

			_, err := engine.Run(ctx, ImportRunOpts{
				CourseName: "Pebble Creek",
				Paths:      writeScorecards(t, 1),
				HoleCount:  9,
			}, nil)
			if err != nil {
				t.Fatalf("cache failure leaked into import result: %v", err)
			}
		})

		t.Run("Cancelled Context", func(t *testing.T) {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			recognizer := &mockRecognizer{
				extractions: map[int]*services.ScorecardExtraction{0: nineHoles(0.9)},
			}
			engine := NewScorecardEngine(recognizer, &mockCourseService{}, nil)

			_, err := engine.Run(cancelled, ImportRunOpts{
				CourseName: "Pebble Creek",
				Paths:      writeScorecards(t, 1),
				HoleCount:  9,
			}, nil)
			if err == nil {
				t.Fatal("expected error for cancelled context")
			}
		})
	})

	t.Run("Uninitialized Engine", func(t *testing.T) {
		engine := NewScorecardEngine(nil, nil, nil)
		_, err := engine.Run(ctx, ImportRunOpts{CourseName: "X", Paths: []string{"x"}}, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
