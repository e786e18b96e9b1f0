package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusattend/internal/store"
)

// Repository persists sessions and records in Postgres. It satisfies both
// SessionStore and RecordStore.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SubjectOwnedBy returns the subject name when the subject exists and is
// owned by the faculty.
func (r *Repository) SubjectOwnedBy(ctx context.Context, subjectID, facultyID int64) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name FROM subjects WHERE id = $1 AND faculty_id = $2
	`, subjectID, facultyID)
	var name string
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return name, true, nil
}

// InsertSession writes a new session row and fills in the generated ID.
func (r *Repository) InsertSession(ctx context.Context, s *Session) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_sessions (subject_id, faculty_id, session_date, expires_at, qr_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.SubjectID, s.FacultyID, s.SessionDate, s.ExpiresAt, s.Token)
	return row.Scan(&s.ID)
}

// ActiveSessionByToken finds the session matching token whose expiry is
// strictly after now. A missing row maps to nil, not an error, so the caller
// cannot tell an unknown token from an expired one.
func (r *Repository) ActiveSessionByToken(ctx context.Context, token string, now time.Time) (*ActiveSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.subject_id, sub.name, u.name, s.expires_at
		FROM attendance_sessions s
		JOIN subjects sub ON s.subject_id = sub.id
		JOIN users u ON s.faculty_id = u.id
		WHERE s.qr_token = $1 AND s.expires_at > $2
	`, token, now)
	var sess ActiveSession
	if err := row.Scan(&sess.ID, &sess.SubjectID, &sess.SubjectName, &sess.FacultyName, &sess.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// HasRecord reports whether the student already checked in to the session.
func (r *Repository) HasRecord(ctx context.Context, sessionID, studentID int64) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records WHERE session_id = $1 AND student_id = $2
		)
	`, sessionID, studentID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// InsertRecord writes a record. The unique constraint on
// (session_id, student_id) closes the check-then-insert race; its violation
// is reported as ErrAlreadyMarked.
func (r *Repository) InsertRecord(ctx context.Context, sessionID, studentID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (session_id, student_id, marked_at)
		VALUES ($1, $2, $3)
	`, sessionID, studentID, at)
	if err != nil && store.IsUniqueViolation(err) {
		return ErrAlreadyMarked
	}
	return err
}

// SessionOwnedBy reports whether the session exists and was created by the
// faculty. Used by the live-count endpoint.
func (r *Repository) SessionOwnedBy(ctx context.Context, sessionID, facultyID int64) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance_sessions WHERE id = $1 AND faculty_id = $2
		)
	`, sessionID, facultyID)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// CountRecords returns the number of check-ins for a session.
func (r *Repository) CountRecords(ctx context.Context, sessionID int64) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance_records WHERE session_id = $1
	`, sessionID)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
