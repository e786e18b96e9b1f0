// Package reports serves the read-only dashboards: attendance matrices,
// per-subject summaries, department statistics and CSV export. These queries
// carry no invariants beyond standard filtering.
package reports

import "time"

// SessionAttendance is one row of a subject's attendance matrix: a session
// joined with a student who checked in, or a session alone when nobody did.
type SessionAttendance struct {
	SessionID    int64      `json:"session_id"`
	SessionDate  time.Time  `json:"session_date"`
	StudentID    *int64     `json:"student_id,omitempty"`
	StudentName  *string    `json:"student_name,omitempty"`
	StudentEmail *string    `json:"student_email,omitempty"`
	MarkedAt     *time.Time `json:"attendance_time,omitempty"`
}

// SessionSummary counts check-ins for one session.
type SessionSummary struct {
	SessionID       int64     `json:"id"`
	SessionDate     time.Time `json:"session_date"`
	AttendanceCount int64     `json:"attendance_count"`
}

// StudentSession is one session from a student's perspective.
type StudentSession struct {
	SessionID   int64      `json:"session_id"`
	SessionDate time.Time  `json:"session_date"`
	SubjectName string     `json:"subject_name"`
	FacultyName string     `json:"faculty_name"`
	MarkedAt    *time.Time `json:"attendance_time,omitempty"`
	Status      string     `json:"status"`
}

// SubjectSummary aggregates a student's attendance for one subject.
type SubjectSummary struct {
	SubjectID        int64   `json:"subject_id"`
	SubjectName      string  `json:"subject_name"`
	TotalSessions    int64   `json:"total_sessions"`
	AttendedSessions int64   `json:"attended_sessions"`
	Percentage       float64 `json:"attendance_percentage"`
}

// ExportRow is one line of the CSV export.
type ExportRow struct {
	StudentName  string
	StudentEmail string
	Date         string
	Status       string
}

// DepartmentStat splits head counts per department.
type DepartmentStat struct {
	Department   string `json:"department"`
	FacultyCount int64  `json:"faculty_count"`
	StudentCount int64  `json:"student_count"`
}

// RecentSession is a recently held session with its turnout.
type RecentSession struct {
	SessionDate     time.Time `json:"session_date"`
	SubjectName     string    `json:"subject_name"`
	FacultyName     string    `json:"faculty_name"`
	AttendanceCount int64     `json:"attendance_count"`
}

// Dashboard is the principal's landing view.
type Dashboard struct {
	FacultyCount    int64            `json:"faculty"`
	StudentCount    int64            `json:"students"`
	SubjectCount    int64            `json:"subjects"`
	TodaySessions   int64            `json:"today_sessions"`
	DepartmentStats []DepartmentStat `json:"department_stats"`
	RecentSessions  []RecentSession  `json:"recent_sessions"`
}

// Analytics is the admin's system-wide totals view.
type Analytics struct {
	Users           int64            `json:"users"`
	Students        int64            `json:"students"`
	Faculty         int64            `json:"faculty"`
	Subjects        int64            `json:"subjects"`
	Sessions        int64            `json:"sessions"`
	Attendance      int64            `json:"attendance"`
	RecentSessions  []RecentSession  `json:"recent_sessions"`
	DepartmentStats []DepartmentStat `json:"department_stats"`
}

// OverviewRow aggregates one (student, subject) pair for the principal's
// attendance overview.
type OverviewRow struct {
	StudentName      string  `json:"student_name"`
	Department       string  `json:"department"`
	SubjectName      string  `json:"subject_name"`
	TotalSessions    int64   `json:"total_sessions"`
	AttendedSessions int64   `json:"attended_sessions"`
	Percentage       float64 `json:"attendance_percentage"`
}
