package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

// CourseRepository implements models.Repository[*models.Course] for course caching.
//
// The hole layout is stored as a JSON column; hole_count and total_par are
// denormalized for listing without unmarshalling every layout.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new CourseRepository with the given database connection
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course into the database with generated ID and sequence
func (r *CourseRepository) Create(course *models.Course) error {
	sequence, err := NextSequence(r.db, "courses")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	course.SetID(id)

	if err := course.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	holesJSON, err := json.Marshal(course.Holes())
	if err != nil {
		return fmt.Errorf("failed to encode hole layout: %w", err)
	}

	query := `
		INSERT INTO courses (id, sequence, remote_id, name, city, state, hole_count, total_par, holes_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		course.RemoteID(),
		course.Name(),
		course.City(),
		course.State(),
		course.HoleCount(),
		course.TotalPar(),
		string(holesJSON),
		course.CreatedAt(),
		course.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	return nil
}

// Get retrieves a course by ID, excluding soft-deleted courses
func (r *CourseRepository) Get(id string) (*models.Course, error) {
	query := `
		SELECT id, sequence, remote_id, name, city, state, holes_json, updated_at, deleted_at
		FROM courses
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a course by the backend's identifier
func (r *CourseRepository) GetByRemoteID(remoteID string) (*models.Course, error) {
	query := `
		SELECT id, sequence, remote_id, name, city, state, holes_json, updated_at, deleted_at
		FROM courses
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing course in the database
func (r *CourseRepository) Update(course *models.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	holesJSON, err := json.Marshal(course.Holes())
	if err != nil {
		return fmt.Errorf("failed to encode hole layout: %w", err)
	}

	now := time.Now()
	course.SetUpdatedAt(now)

	query := `
		UPDATE courses
		SET remote_id = ?, name = ?, city = ?, state = ?, hole_count = ?, total_par = ?, holes_json = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		course.RemoteID(),
		course.Name(),
		course.City(),
		course.State(),
		course.HoleCount(),
		course.TotalPar(),
		string(holesJSON),
		now,
		course.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("course not found or already deleted: %s", course.ID())
	}

	return nil
}

// Delete soft-deletes a course by ID
func (r *CourseRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE courses
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("course not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all courses matching the given criteria, excluding soft-deleted courses
func (r *CourseRepository) List(criteria map[string]any) ([]*models.Course, error) {
	query := `
		SELECT id, sequence, remote_id, name, city, state, holes_json, updated_at, deleted_at
		FROM courses
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	if state, ok := criteria["state"].(string); ok && state != "" {
		query += " AND state = ?"
		args = append(args, state)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return courses, nil
}

// scanOne scans a single row into a [models.Course]
func (r *CourseRepository) scanOne(row *sql.Row) (*models.Course, error) {
	course, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		id        string
		sequence  int
		remoteID  sql.NullString
		name      string
		city      sql.NullString
		state     sql.NullString
		holesJSON string
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &name, &city, &state, &holesJSON, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	var holes []models.Hole
	if err := json.Unmarshal([]byte(holesJSON), &holes); err != nil {
		return nil, fmt.Errorf("failed to decode hole layout: %w", err)
	}

	course := models.NewCourse(sequence, name, holes)
	course.SetID(id)
	if remoteID.Valid {
		course.SetRemoteID(remoteID.String)
	}
	course.SetLocation(city.String, state.String)
	course.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		course.SetDeletedAt(&deletedAt.Time)
	}

	return course, nil
}
