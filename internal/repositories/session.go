package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
)

// SessionRepository implements models.Repository[*models.Session] for persisted logins.
//
// At most one live session is expected per database; Latest returns the most
// recently created one.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session into the database with generated ID and sequence
func (r *SessionRepository) Create(session *models.Session) error {
	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	session.SetID(id)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, sequence, user_id, email, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		session.UserID(),
		session.Email(),
		session.AccessToken(),
		session.RefreshToken(),
		session.ExpiresAt(),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, email, access_token, refresh_token, expires_at, updated_at, deleted_at
		FROM sessions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Latest retrieves the most recently created live session, or nil when no
// session has been saved.
func (r *SessionRepository) Latest() (*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, email, access_token, refresh_token, expires_at, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	session, err := scanSession(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Update modifies an existing session in the database
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		session.AccessToken(),
		session.RefreshToken(),
		session.ExpiresAt(),
		now,
		session.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", session.ID())
	}

	return nil
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", id)
	}

	return nil
}

// DeleteAll soft-deletes every live session. Used by logout.
func (r *SessionRepository) DeleteAll() error {
	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE deleted_at IS NULL
	`

	if _, err := r.db.Exec(query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// List retrieves all sessions matching the given criteria, excluding soft-deleted sessions
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, email, access_token, refresh_token, expires_at, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

// scanOne scans a single row into a [models.Session]
func (r *SessionRepository) scanOne(row *sql.Row) (*models.Session, error) {
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id           string
		sequence     int
		userID       string
		email        string
		accessToken  string
		refreshToken sql.NullString
		expiresAt    sql.NullTime
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &userID, &email, &accessToken, &refreshToken, &expiresAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	session := models.NewSession(sequence, userID, email, accessToken)
	session.SetID(id)
	if refreshToken.Valid {
		session.SetRefreshToken(refreshToken.String)
	}
	if expiresAt.Valid {
		session.SetExpiresAt(expiresAt.Time)
	}
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}
