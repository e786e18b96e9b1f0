// Package attendance implements the QR attendance-session protocol: minting
// short-lived session tokens for a subject and recording at most one check-in
// per student against each session.
package attendance

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors surfaced to the API layer.
var (
	// ErrNotFound means the referenced subject does not exist or is not
	// owned by the requesting faculty.
	ErrNotFound = errors.New("subject not found")

	// ErrInvalidOrExpired covers both an unknown token and a token whose
	// session is past its expiry. The two causes are deliberately not
	// distinguishable to the caller.
	ErrInvalidOrExpired = errors.New("invalid or expired QR code")

	// ErrAlreadyMarked means an attendance record already exists for the
	// (session, student) pair.
	ErrAlreadyMarked = errors.New("attendance already marked for this session")
)

// Session is a minted attendance window for a subject.
type Session struct {
	ID          int64
	SubjectID   int64
	FacultyID   int64
	SubjectName string
	Token       string
	SessionDate time.Time
	ExpiresAt   time.Time
}

// ActiveSession is the recorder's view of a session matched by token,
// joined with display names.
type ActiveSession struct {
	ID          int64
	SubjectID   int64
	SubjectName string
	FacultyName string
	ExpiresAt   time.Time
}

// Confirmation is returned to the student after a successful scan.
type Confirmation struct {
	SessionID   int64
	SubjectName string
	FacultyName string
	MarkedAt    time.Time
}

// SessionStore is the persistence capability the Issuer needs.
type SessionStore interface {
	// SubjectOwnedBy returns the subject name when subjectID exists and is
	// owned by facultyID, or ok=false otherwise.
	SubjectOwnedBy(ctx context.Context, subjectID, facultyID int64) (name string, ok bool, err error)
	// InsertSession persists a new session and fills in its ID.
	InsertSession(ctx context.Context, s *Session) error
}

// RecordStore is the persistence capability the Recorder needs.
type RecordStore interface {
	// ActiveSessionByToken returns the session matching token whose expiry
	// is strictly after now, or nil when there is no such session.
	ActiveSessionByToken(ctx context.Context, token string, now time.Time) (*ActiveSession, error)
	// HasRecord reports whether a record exists for the pair.
	HasRecord(ctx context.Context, sessionID, studentID int64) (bool, error)
	// InsertRecord writes a record; it returns ErrAlreadyMarked when the
	// storage-level uniqueness constraint rejects the insert.
	InsertRecord(ctx context.Context, sessionID, studentID int64, at time.Time) error
}
