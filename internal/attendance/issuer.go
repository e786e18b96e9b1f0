package attendance

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes gives 256 bits of entropy; collisions are negligible so tokens
// are not re-checked against storage before insert.
const tokenBytes = 32

// Issuer mints attendance sessions for subjects owned by the requesting
// faculty.
type Issuer struct {
	store  SessionStore
	window time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer with a fixed validity window.
func NewIssuer(store SessionStore, window time.Duration) *Issuer {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Issuer{store: store, window: window, now: time.Now}
}

// CreateSession verifies subject ownership, mints an unguessable token and
// persists a session expiring window from now. Returns ErrNotFound when the
// subject does not exist or belongs to a different faculty.
func (i *Issuer) CreateSession(ctx context.Context, subjectID, facultyID int64) (Session, error) {
	name, ok, err := i.store.SubjectOwnedBy(ctx, subjectID, facultyID)
	if err != nil {
		return Session{}, fmt.Errorf("verify subject: %w", err)
	}
	if !ok {
		return Session{}, ErrNotFound
	}

	token, err := newToken()
	if err != nil {
		return Session{}, err
	}

	created := i.now().UTC()
	s := Session{
		SubjectID:   subjectID,
		FacultyID:   facultyID,
		SubjectName: name,
		Token:       token,
		SessionDate: created,
		ExpiresAt:   created.Add(i.window),
	}
	if err := i.store.InsertSession(ctx, &s); err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// Window returns the configured validity window.
func (i *Issuer) Window() time.Duration { return i.window }

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
