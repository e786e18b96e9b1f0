// Package leave handles student leave requests and faculty approval.
package leave

import (
	"errors"
	"time"
)

var (
	// ErrOverlap means a pending or approved request already covers part
	// of the requested range.
	ErrOverlap = errors.New("leave request already exists for overlapping dates")
	// ErrNotFound means the request does not exist or is outside the
	// caller's department.
	ErrNotFound = errors.New("leave request not found")
)

// Statuses a request moves through. Requests start pending and are resolved
// once by faculty.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a student's leave application.
type Request struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id,omitempty"`
	StudentName  string    `json:"student_name,omitempty"`
	StudentEmail string    `json:"student_email,omitempty"`
	Department   string    `json:"department,omitempty"`
	FromDate     time.Time `json:"from_date"`
	ToDate       time.Time `json:"to_date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
