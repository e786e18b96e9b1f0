package reports

import (
	"context"
	"database/sql"
	"strconv"
)

// Repository runs the aggregate queries behind dashboards and exports.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// dateClause appends an optional day or month filter on session_date.
// Exactly one of date (YYYY-MM-DD) and month (YYYY-MM) is used; date wins.
func dateClause(date, month string, args []any) (string, []any) {
	if date != "" {
		args = append(args, date)
		return " AND s.session_date::date = $" + itoa(len(args)) + "::date", args
	}
	if month != "" {
		args = append(args, month)
		return " AND to_char(s.session_date, 'YYYY-MM') = $" + itoa(len(args)), args
	}
	return "", args
}

func itoa(i int) string { return strconv.Itoa(i) }

// SubjectAttendance returns the attendance matrix for one subject.
func (r *Repository) SubjectAttendance(ctx context.Context, subjectID int64, date, month string) ([]SessionAttendance, error) {
	args := []any{subjectID}
	clause, args := dateClause(date, month, args)
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.session_date, u.id, u.name, u.email, ar.marked_at
		FROM attendance_sessions s
		LEFT JOIN attendance_records ar ON s.id = ar.session_id
		LEFT JOIN users u ON ar.student_id = u.id
		WHERE s.subject_id = $1`+clause+`
		ORDER BY s.session_date DESC, u.name ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []SessionAttendance
	for rows.Next() {
		var row SessionAttendance
		if err := rows.Scan(&row.SessionID, &row.SessionDate, &row.StudentID, &row.StudentName, &row.StudentEmail, &row.MarkedAt); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// SessionSummaries counts check-ins per session of a subject.
func (r *Repository) SessionSummaries(ctx context.Context, subjectID int64, date, month string) ([]SessionSummary, error) {
	args := []any{subjectID}
	clause, args := dateClause(date, month, args)
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.session_date, COUNT(ar.id)
		FROM attendance_sessions s
		LEFT JOIN attendance_records ar ON s.id = ar.session_id
		WHERE s.subject_id = $1`+clause+`
		GROUP BY s.id, s.session_date
		ORDER BY s.session_date DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []SessionSummary
	for rows.Next() {
		var row SessionSummary
		if err := rows.Scan(&row.SessionID, &row.SessionDate, &row.AttendanceCount); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// StudentAttendance lists sessions of the student's department with the
// student's own present/absent status.
func (r *Repository) StudentAttendance(ctx context.Context, studentID int64, department string, subjectID int64, month string) ([]StudentSession, error) {
	args := []any{studentID, department}
	query := `
		SELECT s.id, s.session_date, sub.name, u.name, ar.marked_at,
		       CASE WHEN ar.id IS NOT NULL THEN 'Present' ELSE 'Absent' END
		FROM attendance_sessions s
		JOIN subjects sub ON s.subject_id = sub.id
		JOIN users u ON s.faculty_id = u.id
		LEFT JOIN attendance_records ar ON s.id = ar.session_id AND ar.student_id = $1
		WHERE sub.department = $2`
	if subjectID > 0 {
		args = append(args, subjectID)
		query += ` AND s.subject_id = $` + itoa(len(args))
	}
	clause, args := dateClause("", month, args)
	query += clause + ` ORDER BY s.session_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []StudentSession
	for rows.Next() {
		var row StudentSession
		if err := rows.Scan(&row.SessionID, &row.SessionDate, &row.SubjectName, &row.FacultyName, &row.MarkedAt, &row.Status); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// StudentSummary aggregates per-subject attendance percentages for one
// student.
func (r *Repository) StudentSummary(ctx context.Context, studentID int64, department string, subjectID int64, month string) ([]SubjectSummary, error) {
	args := []any{studentID, department}
	query := `
		SELECT sub.id, sub.name, COUNT(s.id), COUNT(ar.id),
		       ROUND(COUNT(ar.id)::numeric / COUNT(s.id) * 100, 2)
		FROM subjects sub
		JOIN attendance_sessions s ON sub.id = s.subject_id
		LEFT JOIN attendance_records ar ON s.id = ar.session_id AND ar.student_id = $1
		WHERE sub.department = $2`
	if subjectID > 0 {
		args = append(args, subjectID)
		query += ` AND sub.id = $` + itoa(len(args))
	}
	clause, args := dateClause("", month, args)
	query += clause + `
		GROUP BY sub.id, sub.name
		ORDER BY sub.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []SubjectSummary
	for rows.Next() {
		var row SubjectSummary
		if err := rows.Scan(&row.SubjectID, &row.SubjectName, &row.TotalSessions, &row.AttendedSessions, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// ExportRows produces the present/absent grid for the CSV export: every
// department student crossed with every session of the subject.
func (r *Repository) ExportRows(ctx context.Context, department string, subjectID int64, month string) ([]ExportRow, error) {
	args := []any{department, subjectID}
	clause, args := dateClause("", month, args)
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.name, u.email, to_char(s.session_date, 'YYYY-MM-DD'),
		       CASE WHEN ar.id IS NOT NULL THEN 'Present' ELSE 'Absent' END
		FROM users u
		CROSS JOIN attendance_sessions s
		LEFT JOIN attendance_records ar ON s.id = ar.session_id AND u.id = ar.student_id
		WHERE u.role = 'student'
		  AND u.department = $1
		  AND s.subject_id = $2`+clause+`
		ORDER BY u.name, s.session_date
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.StudentName, &row.StudentEmail, &row.Date, &row.Status); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// Dashboard assembles the principal's landing view.
func (r *Repository) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	row := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'faculty'),
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM attendance_sessions WHERE session_date::date = CURRENT_DATE)
	`)
	if err := row.Scan(&d.FacultyCount, &d.StudentCount, &d.SubjectCount, &d.TodaySessions); err != nil {
		return Dashboard{}, err
	}

	stats, err := r.departmentStats(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.DepartmentStats = stats

	recent, err := r.recentSessions(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.RecentSessions = recent
	return d, nil
}

// Analytics assembles the admin totals view.
func (r *Repository) Analytics(ctx context.Context) (Analytics, error) {
	var a Analytics
	row := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM users WHERE role = 'faculty'),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM attendance_sessions),
			(SELECT COUNT(*) FROM attendance_records)
	`)
	if err := row.Scan(&a.Users, &a.Students, &a.Faculty, &a.Subjects, &a.Sessions, &a.Attendance); err != nil {
		return Analytics{}, err
	}

	recent, err := r.recentSessions(ctx)
	if err != nil {
		return Analytics{}, err
	}
	a.RecentSessions = recent

	stats, err := r.departmentStats(ctx)
	if err != nil {
		return Analytics{}, err
	}
	a.DepartmentStats = stats
	return a, nil
}

// Overview aggregates attendance per (student, subject) with optional
// department and month filters.
func (r *Repository) Overview(ctx context.Context, department, month string) ([]OverviewRow, error) {
	args := []any{}
	query := `
		SELECT u.name, u.department, sub.name, COUNT(s.id), COUNT(ar.id),
		       ROUND(COUNT(ar.id)::numeric / COUNT(s.id) * 100, 2)
		FROM users u
		JOIN subjects sub ON u.department = sub.department
		JOIN attendance_sessions s ON sub.id = s.subject_id
		LEFT JOIN attendance_records ar ON s.id = ar.session_id AND u.id = ar.student_id
		WHERE u.role = 'student'`
	if department != "" {
		args = append(args, department)
		query += ` AND u.department = $` + itoa(len(args))
	}
	clause, args := dateClause("", month, args)
	query += clause + `
		GROUP BY u.id, u.name, u.department, sub.id, sub.name
		HAVING COUNT(s.id) > 0
		ORDER BY u.department, u.name, sub.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []OverviewRow
	for rows.Next() {
		var row OverviewRow
		if err := rows.Scan(&row.StudentName, &row.Department, &row.SubjectName, &row.TotalSessions, &row.AttendedSessions, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

func (r *Repository) departmentStats(ctx context.Context) ([]DepartmentStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT department,
		       COUNT(*) FILTER (WHERE role = 'faculty'),
		       COUNT(*) FILTER (WHERE role = 'student')
		FROM users
		WHERE role IN ('faculty', 'student')
		GROUP BY department
		ORDER BY department
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []DepartmentStat
	for rows.Next() {
		var row DepartmentStat
		if err := rows.Scan(&row.Department, &row.FacultyCount, &row.StudentCount); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

func (r *Repository) recentSessions(ctx context.Context) ([]RecentSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.session_date, sub.name, u.name, COUNT(ar.id)
		FROM attendance_sessions s
		JOIN subjects sub ON s.subject_id = sub.id
		JOIN users u ON s.faculty_id = u.id
		LEFT JOIN attendance_records ar ON s.id = ar.session_id
		WHERE s.session_date >= now() - interval '7 days'
		GROUP BY s.id, s.session_date, sub.name, u.name
		ORDER BY s.session_date DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []RecentSession
	for rows.Next() {
		var row RecentSession
		if err := rows.Scan(&row.SessionDate, &row.SubjectName, &row.FacultyName, &row.AttendanceCount); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}
