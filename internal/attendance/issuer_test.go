package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	subjects map[int64]struct {
		name      string
		facultyID int64
	}
	inserted  []Session
	insertErr error
	nextID    int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{subjects: map[int64]struct {
		name      string
		facultyID int64
	}{}, nextID: 1}
}

func (f *fakeSessionStore) addSubject(id int64, name string, facultyID int64) {
	f.subjects[id] = struct {
		name      string
		facultyID int64
	}{name, facultyID}
}

func (f *fakeSessionStore) SubjectOwnedBy(_ context.Context, subjectID, facultyID int64) (string, bool, error) {
	sub, ok := f.subjects[subjectID]
	if !ok || sub.facultyID != facultyID {
		return "", false, nil
	}
	return sub.name, true, nil
}

func (f *fakeSessionStore) InsertSession(_ context.Context, s *Session) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	s.ID = f.nextID
	f.nextID++
	f.inserted = append(f.inserted, *s)
	return nil
}

func TestCreateSession(t *testing.T) {
	store := newFakeSessionStore()
	store.addSubject(1, "Data Structures", 10)

	issuer := NewIssuer(store, 5*time.Minute)
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return created }

	sess, err := issuer.CreateSession(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sess.ID)
	assert.Equal(t, "Data Structures", sess.SubjectName)
	assert.Equal(t, created.Add(300*time.Second), sess.ExpiresAt)
	assert.Len(t, sess.Token, 64) // 32 bytes hex-encoded
	require.Len(t, store.inserted, 1)
}

func TestCreateSessionSubjectNotOwned(t *testing.T) {
	store := newFakeSessionStore()
	store.addSubject(1, "Data Structures", 10)

	issuer := NewIssuer(store, 5*time.Minute)

	// Another faculty's subject looks identical to a missing one.
	_, err := issuer.CreateSession(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = issuer.CreateSession(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.inserted)
}

func TestCreateSessionInsertFailure(t *testing.T) {
	store := newFakeSessionStore()
	store.addSubject(1, "Algorithms", 10)
	store.insertErr = errors.New("connection reset")

	issuer := NewIssuer(store, 5*time.Minute)
	_, err := issuer.CreateSession(context.Background(), 1, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewIssuerDefaultWindow(t *testing.T) {
	issuer := NewIssuer(newFakeSessionStore(), 0)
	assert.Equal(t, 5*time.Minute, issuer.Window())
}

func TestTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := newToken()
		require.NoError(t, err)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[token] = struct{}{}
	}
}
