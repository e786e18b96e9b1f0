// Package users handles accounts: registration, login and role-scoped
// rosters. A user's role is fixed at creation; there is no role-change
// operation.
package users

import (
	"errors"
	"time"
)

var (
	// ErrEmailTaken means an account already exists with the email.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound means the referenced user does not exist.
	ErrNotFound = errors.New("user not found")
)

// Roles accepted at registration.
const (
	RoleAdmin     = "admin"
	RolePrincipal = "principal"
	RoleFaculty   = "faculty"
	RoleStudent   = "student"
)

// User is an account of any role.
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
