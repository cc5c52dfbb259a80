package repositories

import (
	"fmt"
	"strings"

	"github.com/roundsapp/rounds/internal/models"
)

// CourseCacheAdapter implements tasks.CourseCacher using CourseRepository.
//
// Imported courses are cached locally after a successful upload so list and
// show commands work offline. Duplicates are resolved by remote ID.
type CourseCacheAdapter struct {
	repo *CourseRepository
}

// NewCourseCacheAdapter creates a new CourseCacheAdapter with the given repository
func NewCourseCacheAdapter(repo *CourseRepository) *CourseCacheAdapter {
	return &CourseCacheAdapter{repo: repo}
}

// CacheCourse stores an imported course in the local cache.
// A course already cached under the same remote ID is updated in place.
func (a *CourseCacheAdapter) CacheCourse(course *models.Course) error {
	if course.RemoteID() != "" {
		existing, err := a.repo.GetByRemoteID(course.RemoteID())
		if err == nil && existing != nil {
			existing.SetName(course.Name())
			existing.SetLocation(course.City(), course.State())
			existing.SetHoles(course.Holes())
			return a.repo.Update(existing)
		}
	}

	cached := models.NewCourse(0, course.Name(), course.Holes())
	cached.SetRemoteID(course.RemoteID())
	cached.SetLocation(course.City(), course.State())

	if err := a.repo.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache course: %w", err)
	}

	return nil
}
