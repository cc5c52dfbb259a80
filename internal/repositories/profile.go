package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

// ProfileRepository implements models.Repository[*models.Profile] for profile caching.
//
// Handles profile CRUD operations with soft delete support and remote-ID lookups.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository with the given database connection
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile into the database with generated ID and sequence
func (r *ProfileRepository) Create(profile *models.Profile) error {
	sequence, err := NextSequence(r.db, "profiles")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	profile.SetID(id)

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO profiles (id, sequence, remote_id, full_name, username, email, handicap, elo, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		profile.RemoteID(),
		profile.FullName(),
		profile.Username(),
		profile.Email(),
		profile.Handicap(),
		profile.Elo(),
		profile.ImageURL(),
		profile.CreatedAt(),
		profile.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Get retrieves a profile by ID, excluding soft-deleted profiles
func (r *ProfileRepository) Get(id string) (*models.Profile, error) {
	query := `
		SELECT id, sequence, remote_id, full_name, username, email, handicap, elo, image_url, updated_at, deleted_at
		FROM profiles
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a profile by the backend's identifier
func (r *ProfileRepository) GetByRemoteID(remoteID string) (*models.Profile, error) {
	query := `
		SELECT id, sequence, remote_id, full_name, username, email, handicap, elo, image_url, updated_at, deleted_at
		FROM profiles
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing profile in the database
func (r *ProfileRepository) Update(profile *models.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	profile.SetUpdatedAt(now)

	query := `
		UPDATE profiles
		SET full_name = ?, username = ?, email = ?, handicap = ?, elo = ?, image_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		profile.FullName(),
		profile.Username(),
		profile.Email(),
		profile.Handicap(),
		profile.Elo(),
		profile.ImageURL(),
		now,
		profile.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found or already deleted: %s", profile.ID())
	}

	return nil
}

// Delete soft-deletes a profile by ID
func (r *ProfileRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE profiles
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all profiles matching the given criteria, excluding soft-deleted profiles
func (r *ProfileRepository) List(criteria map[string]any) ([]*models.Profile, error) {
	query := `
		SELECT id, sequence, remote_id, full_name, username, email, handicap, elo, image_url, updated_at, deleted_at
		FROM profiles
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if username, ok := criteria["username"].(string); ok && username != "" {
		query += " AND username = ?"
		args = append(args, username)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

// scanOne scans a single row into a [models.Profile]
func (r *ProfileRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found")
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// rowScanner covers both [sql.Row] and [sql.Rows]
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		id        string
		sequence  int
		remoteID  string
		fullName  string
		username  string
		email     sql.NullString
		handicap  float64
		elo       int
		imageURL  sql.NullString
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &fullName, &username, &email, &handicap, &elo, &imageURL, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	profile := models.NewProfile(sequence, remoteID, fullName, username)
	profile.SetID(id)
	profile.SetHandicap(handicap)
	profile.SetElo(elo)
	if email.Valid {
		profile.SetEmail(email.String)
	}
	if imageURL.Valid {
		profile.SetImageURL(imageURL.String)
	}
	profile.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		profile.SetDeletedAt(&deletedAt.Time)
	}

	return profile, nil
}
