package attendance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordKey struct {
	sessionID, studentID int64
}

type fakeRecordStore struct {
	sessions map[string]ActiveSession // keyed by token
	records  map[recordKey]time.Time
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		sessions: map[string]ActiveSession{},
		records:  map[recordKey]time.Time{},
	}
}

func (f *fakeRecordStore) ActiveSessionByToken(_ context.Context, token string, now time.Time) (*ActiveSession, error) {
	sess, ok := f.sessions[token]
	if !ok || !sess.ExpiresAt.After(now) {
		return nil, nil
	}
	return &sess, nil
}

func (f *fakeRecordStore) HasRecord(_ context.Context, sessionID, studentID int64) (bool, error) {
	_, ok := f.records[recordKey{sessionID, studentID}]
	return ok, nil
}

func (f *fakeRecordStore) InsertRecord(_ context.Context, sessionID, studentID int64, at time.Time) error {
	key := recordKey{sessionID, studentID}
	if _, ok := f.records[key]; ok {
		return ErrAlreadyMarked
	}
	f.records[key] = at
	return nil
}

func newTestRecorder(store *fakeRecordStore, now time.Time) *Recorder {
	r := NewRecorder(store)
	r.now = func() time.Time { return now }
	return r
}

func TestMarkAttendance(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC)
	store := newFakeRecordStore()
	store.sessions["tok-1"] = ActiveSession{
		ID:          7,
		SubjectName: "Data Structures",
		FacultyName: "Dr. Rao",
		ExpiresAt:   now.Add(4 * time.Minute),
	}

	rec := newTestRecorder(store, now)
	conf, err := rec.MarkAttendance(context.Background(), "tok-1", 100)
	require.NoError(t, err)

	assert.Equal(t, int64(7), conf.SessionID)
	assert.Equal(t, "Data Structures", conf.SubjectName)
	assert.Equal(t, "Dr. Rao", conf.FacultyName)
	assert.Equal(t, now, conf.MarkedAt)
	assert.Len(t, store.records, 1)
}

func TestMarkAttendanceDuplicate(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC)
	store := newFakeRecordStore()
	store.sessions["tok-1"] = ActiveSession{ID: 7, ExpiresAt: now.Add(time.Minute)}

	rec := newTestRecorder(store, now)
	_, err := rec.MarkAttendance(context.Background(), "tok-1", 100)
	require.NoError(t, err)

	_, err = rec.MarkAttendance(context.Background(), "tok-1", 100)
	assert.ErrorIs(t, err, ErrAlreadyMarked)
	assert.Len(t, store.records, 1)

	// A different student is unaffected.
	_, err = rec.MarkAttendance(context.Background(), "tok-1", 101)
	assert.NoError(t, err)
}

func TestMarkAttendanceRaceLosesToConstraint(t *testing.T) {
	// Simulates the second of two concurrent scans: the duplicate check
	// passes but the storage constraint rejects the insert.
	now := time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC)
	store := newFakeRecordStore()
	store.sessions["tok-1"] = ActiveSession{ID: 7, ExpiresAt: now.Add(time.Minute)}

	raced := &racingRecordStore{fakeRecordStore: store}
	rec := NewRecorder(raced)
	rec.now = func() time.Time { return now }

	_, err := rec.MarkAttendance(context.Background(), "tok-1", 100)
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

// racingRecordStore reports no record but fails the insert the way the
// unique constraint would.
type racingRecordStore struct {
	*fakeRecordStore
}

func (r *racingRecordStore) HasRecord(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (r *racingRecordStore) InsertRecord(context.Context, int64, int64, time.Time) error {
	return ErrAlreadyMarked
}

func TestMarkAttendanceExpired(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := newFakeRecordStore()
	store.sessions["tok-1"] = ActiveSession{ID: 7, ExpiresAt: created.Add(5 * time.Minute)}

	// 301 seconds after creation the window has closed.
	rec := newTestRecorder(store, created.Add(301*time.Second))
	_, err := rec.MarkAttendance(context.Background(), "tok-1", 100)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
	assert.Empty(t, store.records)
}

func TestMarkAttendanceExpiryBoundaryIsExclusive(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	expires := created.Add(5 * time.Minute)
	store := newFakeRecordStore()
	store.sessions["tok-1"] = ActiveSession{ID: 7, ExpiresAt: expires}

	// One instant before expiry still succeeds.
	rec := newTestRecorder(store, expires.Add(-time.Nanosecond))
	_, err := rec.MarkAttendance(context.Background(), "tok-1", 100)
	require.NoError(t, err)

	// Exactly at expiry the session is no longer active.
	rec = newTestRecorder(store, expires)
	_, err = rec.MarkAttendance(context.Background(), "tok-1", 101)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestMarkAttendanceUnknownToken(t *testing.T) {
	rec := newTestRecorder(newFakeRecordStore(), time.Now())
	_, err := rec.MarkAttendance(context.Background(), "never-issued", 100)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestExtractToken(t *testing.T) {
	payload, err := json.Marshal(map[string]any{
		"session_id": 7,
		"token":      "tok-abc",
		"subject":    "Data Structures",
		"expires_at": "2026-03-02T09:05:00Z",
	})
	require.NoError(t, err)

	// Structured payload and bare token resolve to the same value.
	assert.Equal(t, "tok-abc", extractToken(string(payload)))
	assert.Equal(t, "tok-abc", extractToken("tok-abc"))

	// JSON without a token field falls back to the raw input.
	assert.Equal(t, `{"subject":"x"}`, extractToken(`{"subject":"x"}`))
}
