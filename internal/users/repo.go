package users

import (
	"context"
	"database/sql"
	"errors"

	"campusattend/internal/store"
)

// Repository persists users in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a user and returns it with generated fields filled in.
// Returns ErrEmailTaken when the email is already registered.
func (r *Repository) Insert(ctx context.Context, name, email, passwordHash, role, department string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, name, email, passwordHash, role, department)
	u := User{Name: name, Email: email, Role: role, Department: department}
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if store.IsUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// ByEmail returns a user and their password hash, or ErrNotFound.
func (r *Repository) ByEmail(ctx context.Context, email string) (User, string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, department, created_at
		FROM users WHERE email = $1
	`, email)
	var (
		u    User
		hash string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Department, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, "", ErrNotFound
		}
		return User{}, "", err
	}
	return u, hash, nil
}

// ExistsWithRole reports whether a user exists with the given id and role.
func (r *Repository) ExistsWithRole(ctx context.Context, id int64, role string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = $2)
	`, id, role)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ListByRole returns all users with a role, ordered by name.
func (r *Repository) ListByRole(ctx context.Context, role string) ([]User, error) {
	return r.list(ctx, `
		SELECT id, name, email, role, department, created_at
		FROM users WHERE role = $1
		ORDER BY name ASC
	`, role)
}

// ListByRoleAndDepartment returns users with a role within one department.
func (r *Repository) ListByRoleAndDepartment(ctx context.Context, role, department string) ([]User, error) {
	return r.list(ctx, `
		SELECT id, name, email, role, department, created_at
		FROM users WHERE role = $1 AND department = $2
		ORDER BY name ASC
	`, role, department)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
