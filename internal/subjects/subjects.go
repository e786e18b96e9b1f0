// Package subjects manages course offerings, each owned by exactly one
// faculty member and scoped to a department.
package subjects

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrFacultyNotFound means the referenced owner is not a faculty user.
var ErrFacultyNotFound = errors.New("faculty not found")

// Subject is a named course offering.
type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FacultyID   int64     `json:"faculty_id,omitempty"`
	FacultyName string    `json:"faculty_name,omitempty"`
	Department  string    `json:"department"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Repository persists subjects in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a subject after verifying the owner holds the faculty role.
func (r *Repository) Insert(ctx context.Context, name string, facultyID int64, department string) (Subject, error) {
	var ok bool
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'faculty')
	`, facultyID)
	if err := row.Scan(&ok); err != nil {
		return Subject{}, err
	}
	if !ok {
		return Subject{}, ErrFacultyNotFound
	}

	sub := Subject{Name: name, FacultyID: facultyID, Department: department}
	row = r.db.QueryRowContext(ctx, `
		INSERT INTO subjects (name, faculty_id, department)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, name, facultyID, department)
	if err := row.Scan(&sub.ID, &sub.CreatedAt); err != nil {
		return Subject{}, err
	}
	return sub, nil
}

// ListByFaculty returns the subjects owned by one faculty member.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID int64) ([]Subject, error) {
	return r.list(ctx, `
		SELECT id, name, faculty_id, '', department, created_at
		FROM subjects WHERE faculty_id = $1
		ORDER BY name
	`, facultyID)
}

// ListByDepartment returns a department's subjects with owner names, for
// student course lists.
func (r *Repository) ListByDepartment(ctx context.Context, department string) ([]Subject, error) {
	return r.list(ctx, `
		SELECT s.id, s.name, s.faculty_id, u.name, s.department, s.created_at
		FROM subjects s
		JOIN users u ON s.faculty_id = u.id
		WHERE s.department = $1
		ORDER BY s.name
	`, department)
}

// ListAll returns every subject with its owner, for the admin surface.
func (r *Repository) ListAll(ctx context.Context) ([]Subject, error) {
	return r.list(ctx, `
		SELECT s.id, s.name, s.faculty_id, u.name, s.department, s.created_at
		FROM subjects s
		JOIN users u ON s.faculty_id = u.id
		ORDER BY s.name
	`)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.FacultyID, &s.FacultyName, &s.Department, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
