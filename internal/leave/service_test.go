package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveStore struct {
	overlap   bool
	inserted  []Request
	updatedOK bool
}

func (f *fakeLeaveStore) HasOverlap(context.Context, int64, string, string) (bool, error) {
	return f.overlap, nil
}

func (f *fakeLeaveStore) Insert(_ context.Context, studentID int64, from, to, reason string) (Request, error) {
	req := Request{ID: int64(len(f.inserted) + 1), StudentID: studentID, Reason: reason, Status: StatusPending}
	f.inserted = append(f.inserted, req)
	return req, nil
}

func (f *fakeLeaveStore) UpdateStatus(context.Context, int64, string, string) (bool, error) {
	return f.updatedOK, nil
}

func TestApply(t *testing.T) {
	store := &fakeLeaveStore{}
	svc := NewService(store)

	req, err := svc.Apply(context.Background(), 100, "2026-03-10", "2026-03-12", "family function at home")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.Len(t, store.inserted, 1)
}

func TestApplyOverlap(t *testing.T) {
	store := &fakeLeaveStore{overlap: true}
	svc := NewService(store)

	_, err := svc.Apply(context.Background(), 100, "2026-03-10", "2026-03-12", "family function at home")
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Empty(t, store.inserted)
}

func TestResolve(t *testing.T) {
	svc := NewService(&fakeLeaveStore{updatedOK: true})
	assert.NoError(t, svc.Resolve(context.Background(), 1, "CSE", StatusApproved))
}

func TestResolveOutsideDepartment(t *testing.T) {
	svc := NewService(&fakeLeaveStore{updatedOK: false})
	err := svc.Resolve(context.Background(), 1, "ECE", StatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}
