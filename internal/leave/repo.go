package leave

import (
	"context"
	"database/sql"
)

// Repository persists leave requests in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// HasOverlap reports whether a pending or approved request of the student
// intersects [from, to].
func (r *Repository) HasOverlap(ctx context.Context, studentID int64, from, to string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE student_id = $1
			  AND status IN ('pending', 'approved')
			  AND from_date <= $3::date
			  AND to_date >= $2::date
		)
	`, studentID, from, to)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert creates a pending request.
func (r *Repository) Insert(ctx context.Context, studentID int64, from, to, reason string) (Request, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (student_id, from_date, to_date, reason, status)
		VALUES ($1, $2::date, $3::date, $4, 'pending')
		RETURNING id, from_date, to_date, created_at
	`, studentID, from, to, reason)
	req := Request{StudentID: studentID, Reason: reason, Status: StatusPending}
	if err := row.Scan(&req.ID, &req.FromDate, &req.ToDate, &req.CreatedAt); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ListByStudent returns the student's own requests, newest first.
func (r *Repository) ListByStudent(ctx context.Context, studentID int64) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, from_date, to_date, reason, status, created_at
		FROM leave_requests
		WHERE student_id = $1
		ORDER BY created_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.FromDate, &req.ToDate, &req.Reason, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	return res, rows.Err()
}

// ListByDepartment returns requests from a department's students for faculty
// review.
func (r *Repository) ListByDepartment(ctx context.Context, department string) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT lr.id, lr.from_date, lr.to_date, lr.reason, lr.status, lr.created_at,
		       u.name, u.email, u.department
		FROM leave_requests lr
		JOIN users u ON lr.student_id = u.id
		WHERE u.department = $1
		ORDER BY lr.created_at DESC
	`, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.FromDate, &req.ToDate, &req.Reason, &req.Status, &req.CreatedAt,
			&req.StudentName, &req.StudentEmail, &req.Department); err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	return res, rows.Err()
}

// UpdateStatus resolves a request, scoped to the reviewer's department.
// Returns false when no request matched.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, department, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_requests lr
		SET status = $3
		FROM users u
		WHERE lr.id = $1 AND lr.student_id = u.id AND u.department = $2
	`, id, department, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
