package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Recorder converts a scanned token into an attendance record, enforcing the
// expiry window and per-student uniqueness.
type Recorder struct {
	store RecordStore
	now   func() time.Time
}

// NewRecorder creates a recorder backed by a record store.
func NewRecorder(store RecordStore) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// MarkAttendance looks up the session for raw (either a scanned QR payload or
// a bare token), rejects expired or unknown tokens with ErrInvalidOrExpired,
// and inserts at most one record per (session, student).
func (r *Recorder) MarkAttendance(ctx context.Context, raw string, studentID int64) (Confirmation, error) {
	token := extractToken(raw)
	now := r.now().UTC()

	sess, err := r.store.ActiveSessionByToken(ctx, token, now)
	if err != nil {
		return Confirmation{}, fmt.Errorf("lookup session: %w", err)
	}
	if sess == nil {
		return Confirmation{}, ErrInvalidOrExpired
	}

	// Cheap duplicate check first; the unique constraint on
	// (session_id, student_id) still backstops concurrent scans.
	exists, err := r.store.HasRecord(ctx, sess.ID, studentID)
	if err != nil {
		return Confirmation{}, fmt.Errorf("check record: %w", err)
	}
	if exists {
		return Confirmation{}, ErrAlreadyMarked
	}

	if err := r.store.InsertRecord(ctx, sess.ID, studentID, now); err != nil {
		if errors.Is(err, ErrAlreadyMarked) {
			return Confirmation{}, ErrAlreadyMarked
		}
		return Confirmation{}, fmt.Errorf("insert record: %w", err)
	}

	return Confirmation{
		SessionID:   sess.ID,
		SubjectName: sess.SubjectName,
		FacultyName: sess.FacultyName,
		MarkedAt:    now,
	}, nil
}

// extractToken accepts either the structured QR payload or a bare token. Only
// the token field is trusted; everything else in the payload is display data.
func extractToken(raw string) string {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && payload.Token != "" {
		return payload.Token
	}
	return raw
}
