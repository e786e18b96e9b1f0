package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusattend/internal/attendance"
	"campusattend/internal/auth"
	"campusattend/internal/leave"
	"campusattend/internal/metrics"
	"campusattend/internal/queue"
)

type scanRequest struct {
	QRToken string `json:"qr_token" binding:"required"`
}

// Scan marks attendance for the caller against the session identified by the
// scanned token.
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, _ := auth.FromContext(c)
	conf, err := h.recorder.MarkAttendance(c.Request.Context(), req.QRToken, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrInvalidOrExpired):
			metrics.Scans.WithLabelValues(metrics.ScanInvalidOrExpired).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": attendance.ErrInvalidOrExpired.Error()})
		case errors.Is(err, attendance.ErrAlreadyMarked):
			metrics.Scans.WithLabelValues(metrics.ScanAlreadyMarked).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": attendance.ErrAlreadyMarked.Error()})
		default:
			metrics.Scans.WithLabelValues(metrics.ScanError).Inc()
			internalError(c, "failed to mark attendance")
		}
		return
	}
	metrics.Scans.WithLabelValues(metrics.ScanOK).Inc()

	if h.queue != nil {
		// Best effort: the live counter lags rather than failing the scan.
		if err := h.queue.Publish(c.Request.Context(), queue.Message{
			Type: queue.TypeMarked,
			Body: []byte(itoa64(conf.SessionID)),
		}); err != nil {
			log.Printf("queue publish failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance marked successfully",
		"session": gin.H{
			"subject_name": conf.SubjectName,
			"faculty_name": conf.FacultyName,
			"timestamp":    conf.MarkedAt,
		},
	})
}

// StudentAttendance returns the caller's session history and per-subject
// percentages.
func (h *Handler) StudentAttendance(c *gin.Context) {
	claims, _ := auth.FromContext(c)

	var subjectID int64
	if v := c.Query("subject_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
			return
		}
		subjectID = parsed
	}
	month := c.Query("month")

	sessions, err := h.reports.StudentAttendance(c.Request.Context(), claims.UserID, claims.Department, subjectID, month)
	if err != nil {
		internalError(c, "failed to fetch attendance")
		return
	}
	summary, err := h.reports.StudentSummary(c.Request.Context(), claims.UserID, claims.Department, subjectID, month)
	if err != nil {
		internalError(c, "failed to fetch attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": sessions, "summary": summary})
}

type leaveRequest struct {
	FromDate string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" binding:"required,min=10,max=500"`
}

// ApplyLeave submits a leave request for the caller.
func (h *Handler) ApplyLeave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ToDate < req.FromDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_date must not precede from_date"})
		return
	}

	claims, _ := auth.FromContext(c)
	lr, err := h.leave.Apply(c.Request.Context(), claims.UserID, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		if errors.Is(err, leave.ErrOverlap) {
			c.JSON(http.StatusBadRequest, gin.H{"error": leave.ErrOverlap.Error()})
			return
		}
		internalError(c, "failed to submit leave request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Leave request submitted successfully",
		"leaveRequest": lr,
	})
}

// StudentLeaveRequests lists the caller's leave requests.
func (h *Handler) StudentLeaveRequests(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	reqs, err := h.leaveRepo.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		internalError(c, "failed to fetch leave requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaveRequests": reqs})
}

// StudentSubjects lists the subjects offered in the caller's department.
func (h *Handler) StudentSubjects(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	subs, err := h.subjects.ListByDepartment(c.Request.Context(), claims.Department)
	if err != nil {
		internalError(c, "failed to fetch subjects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subs})
}
