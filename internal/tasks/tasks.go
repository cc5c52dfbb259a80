// package tasks implements the course import pipeline.
//
// The core abstraction is ImportEngine, which turns scorecard images into a
// course on the backend. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/services"
	"github.com/roundsapp/rounds/internal/shared"
	"golang.org/x/time/rate"
)

// PageResult is the recognition outcome for a single scorecard image.
type PageResult struct {
	Path       string                        // Image file path
	Extraction *services.ScorecardExtraction // Extracted hole values, nil on error
	Error      error                         // Recognition error, nil on success
}

// ImportRunResult contains all data from a completed import run.
type ImportRunResult struct {
	Course        *models.Course // Assembled course, with remote ID after upload
	Pages         []PageResult   // Per-image recognition results
	HoleCount     int            // Holes assembled
	LowConfidence []int          // Hole numbers from pages read below the confidence floor
}

// ImportRunOpts configures a course import run.
type ImportRunOpts struct {
	CourseName string   // Name for the new course (required)
	City       string   // Optional location
	State      string   // Optional location
	Paths      []string // Scorecard image files, front nine first
	HoleCount  int      // Expected holes across all images (default 18)
	RateLimit  float64  // OCR requests per second (default 2)
}

// confidenceFloor is the minimum aggregate OCR confidence for a scorecard
// page to count as reliable; holes from lower pages are kept but reported.
const confidenceFloor = 0.6

// ImportEngine defines the course import operation.
type ImportEngine interface {
	// Run performs a full scorecard → backend course import: recognizes each
	// image, assembles and validates the hole layout, uploads the course, and
	// caches it locally.
	Run(ctx context.Context, opts ImportRunOpts, progress chan<- ProgressUpdate) (*ImportRunResult, error)
}

// CourseCacher persists imported courses to the local cache.
// Implemented by repositories.CourseCacheAdapter.
type CourseCacher interface {
	CacheCourse(course *models.Course) error
}

// ScorecardEngine implements [ImportEngine].
type ScorecardEngine struct {
	recognizer services.Recognizer
	courses    services.CourseService
	cache      CourseCacher
}

// NewScorecardEngine creates a ScorecardEngine. cache may be nil, in which
// case imported courses are not persisted locally.
func NewScorecardEngine(recognizer services.Recognizer, courses services.CourseService, cache CourseCacher) *ScorecardEngine {
	return &ScorecardEngine{
		recognizer: recognizer,
		courses:    courses,
		cache:      cache,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks the run.
func (e *ScorecardEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full scorecard import.
//
// Progress events carry a fixed total once recognition begins; the step
// counter never decreases. Validation failures are terminal, recognition and
// upload failures keep the classification assigned by the service clients.
func (e *ScorecardEngine) Run(ctx context.Context, opts ImportRunOpts, progress chan<- ProgressUpdate) (*ImportRunResult, error) {
	if e.recognizer == nil || e.courses == nil {
		return nil, fmt.Errorf("%w: import engine not initialized", shared.ErrServiceUnavailable)
	}
	if strings.TrimSpace(opts.CourseName) == "" {
		return nil, shared.Terminal(fmt.Errorf("%w: course name is required", shared.ErrMissingArgument))
	}
	if len(opts.Paths) == 0 {
		return nil, shared.Terminal(fmt.Errorf("%w: at least one scorecard image is required", shared.ErrMissingArgument))
	}
	if opts.HoleCount <= 0 {
		opts.HoleCount = 18
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}

	// Steps: read images, one per image, assemble, upload. Total is fixed
	// before the first progress event so consumers see a stable denominator.
	total := len(opts.Paths) + 3

	e.sendProgress(progress, checkingRecognizerUpdate(total))
	if err := e.recognizer.Health(ctx); err != nil {
		return nil, fmt.Errorf("%w: recognition service unavailable: %w", shared.ErrImportFailed, err)
	}

	images, err := readImages(opts.Paths)
	if err != nil {
		return nil, shared.Terminal(fmt.Errorf("%w: %v", shared.ErrImportFailed, err))
	}
	e.sendProgress(progress, readScorecardsUpdate(1, total, len(images)))

	perImage := opts.HoleCount / len(opts.Paths)
	if perImage*len(opts.Paths) != opts.HoleCount {
		return nil, shared.Terminal(fmt.Errorf("%w: %d holes cannot be split across %d images", shared.ErrInvalidInput, opts.HoleCount, len(opts.Paths)))
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	result := &ImportRunResult{Pages: make([]PageResult, 0, len(opts.Paths))}
	var pars []int
	var lowConfidence []int

	for i, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return result, shared.Transient(fmt.Errorf("%w: %v", shared.ErrImportFailed, err))
		}
		if err := limiter.Wait(ctx); err != nil {
			return result, shared.Transient(fmt.Errorf("%w: %v", shared.ErrImportFailed, err))
		}

		e.sendProgress(progress, recognizeUpdate(i+2, total, filepath.Base(path)))

		extraction, err := e.recognizer.ExtractHoles(ctx, images[i], perImage)
		page := PageResult{Path: path, Extraction: extraction, Error: err}
		result.Pages = append(result.Pages, page)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %w", shared.ErrImportFailed, filepath.Base(path), err)
		}
		if len(extraction.Scores) != perImage {
			return result, shared.Terminal(fmt.Errorf("%w: %s: expected %d holes, read %d",
				shared.ErrScorecardUnread, filepath.Base(path), perImage, len(extraction.Scores)))
		}

		// Confidence is reported per page, not per hole; a page below the
		// floor flags every hole it contributed.
		if extraction.Confidence < confidenceFloor {
			for h := 1; h <= perImage; h++ {
				lowConfidence = append(lowConfidence, len(pars)+h)
			}
		}
		pars = append(pars, extraction.Scores...)
	}

	e.sendProgress(progress, assembleUpdate(total-1, total, len(pars)))

	course, err := assembleCourse(opts, pars)
	if err != nil {
		return result, shared.Terminal(fmt.Errorf("%w: %v", shared.ErrImportFailed, err))
	}
	result.Course = course
	result.HoleCount = course.HoleCount()
	result.LowConfidence = lowConfidence

	e.sendProgress(progress, uploadUpdate(total, total, course.Name()))

	remoteID, err := e.courses.CreateCourse(ctx, course)
	if err != nil {
		return result, fmt.Errorf("%w: upload failed: %w", shared.ErrImportFailed, err)
	}
	course.SetRemoteID(remoteID)

	e.sendProgress(progress, uploadedUpdate(total, total, course))

	if e.cache != nil {
		e.sendProgress(progress, cacheUpdate(total, total))
		// Cache silently; a cache failure must not fail a completed import.
		_ = e.cache.CacheCourse(course)
	}

	return result, nil
}

// readImages loads all scorecard image files up front so a missing file
// fails the run before any OCR work happens.
func readImages(paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scorecard %s: %w", path, err)
		}
		images = append(images, data)
	}
	return images, nil
}

// assembleCourse converts ordered hole values into a validated course.
// Values arrive sorted by scorecard position and become the par for
// consecutive holes.
func assembleCourse(opts ImportRunOpts, pars []int) (*models.Course, error) {
	holes := make([]models.Hole, 0, len(pars))
	for i, par := range pars {
		holes = append(holes, models.Hole{
			Number: i + 1,
			Par:    par,
		})
	}

	course := models.NewCourse(0, strings.TrimSpace(opts.CourseName), holes)
	course.SetLocation(opts.City, opts.State)

	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}
