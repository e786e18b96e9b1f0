package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	byEmail map[string]struct {
		user User
		hash string
	}
	insertErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]struct {
		user User
		hash string
	}{}}
}

func (f *fakeUserStore) Insert(_ context.Context, name, email, passwordHash, role, department string) (User, error) {
	if f.insertErr != nil {
		return User{}, f.insertErr
	}
	if _, ok := f.byEmail[email]; ok {
		return User{}, ErrEmailTaken
	}
	u := User{ID: int64(len(f.byEmail) + 1), Name: name, Email: email, Role: role, Department: department}
	f.byEmail[email] = struct {
		user User
		hash string
	}{u, passwordHash}
	return u, nil
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (User, string, error) {
	entry, ok := f.byEmail[email]
	if !ok {
		return User{}, "", ErrNotFound
	}
	return entry.user, entry.hash, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)

	u, err := svc.Register(context.Background(), "Asha", "asha@example.edu", "hunter22", RoleStudent, "CSE")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, u.Role)

	stored := store.byEmail["asha@example.edu"]
	assert.NotEqual(t, "hunter22", stored.hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.hash), []byte("hunter22")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "Asha", "asha@example.edu", "hunter22", RoleStudent, "CSE")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Asha Again", "asha@example.edu", "hunter23", RoleStudent, "CSE")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "Asha", "asha@example.edu", "hunter22", RoleStudent, "CSE")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "asha@example.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)

	_, err = svc.Login(context.Background(), "asha@example.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email is indistinguishable from a wrong password.
	_, err = svc.Login(context.Background(), "nobody@example.edu", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
