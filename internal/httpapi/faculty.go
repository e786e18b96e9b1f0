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
	"campusattend/internal/qr"
	"campusattend/internal/reports"
	"campusattend/internal/users"
)

// FacultyStudents lists students of the faculty member's department.
func (h *Handler) FacultyStudents(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	students, err := h.userRepo.ListByRoleAndDepartment(c.Request.Context(), users.RoleStudent, claims.Department)
	if err != nil {
		internalError(c, "failed to fetch students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// FacultySubjects lists subjects owned by the caller.
func (h *Handler) FacultySubjects(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	subs, err := h.subjects.ListByFaculty(c.Request.Context(), claims.UserID)
	if err != nil {
		internalError(c, "failed to fetch subjects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subs})
}

type qrSessionRequest struct {
	SubjectID int64 `json:"subject_id" binding:"required,gt=0"`
}

// CreateQRSession mints an attendance session for a subject the caller owns
// and returns the scannable QR payload.
func (h *Handler) CreateQRSession(c *gin.Context) {
	var req qrSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, _ := auth.FromContext(c)
	sess, err := h.issuer.CreateSession(c.Request.Context(), req.SubjectID, claims.UserID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": attendance.ErrNotFound.Error()})
			return
		}
		internalError(c, "failed to create QR session")
		return
	}
	metrics.SessionsCreated.Inc()

	qrCode, err := qr.DataURL(qr.Payload{
		SessionID: sess.ID,
		Token:     sess.Token,
		Subject:   sess.SubjectName,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		internalError(c, "failed to render QR code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "QR session created successfully",
		"session": gin.H{
			"id":           sess.ID,
			"subject_name": sess.SubjectName,
			"expires_at":   sess.ExpiresAt,
			"qr_code":      qrCode,
			"token":        sess.Token,
		},
	})
}

// SessionLiveCount reports how many students have scanned a session so far.
// The worker keeps a counter in Redis; the database count is the fallback.
func (h *Handler) SessionLiveCount(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	claims, _ := auth.FromContext(c)
	owned, err := h.attRepo.SessionOwnedBy(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		internalError(c, "failed to fetch session")
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if h.redis != nil && h.redis.Client != nil {
		if v, err := h.redis.Client.Get(c.Request.Context(), liveCountKey(sessionID)).Int64(); err == nil {
			c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "count": v})
			return
		}
	}

	count, err := h.attRepo.CountRecords(c.Request.Context(), sessionID)
	if err != nil {
		internalError(c, "failed to count attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "count": count})
}

// SubjectAttendance returns a subject's attendance matrix and per-session
// summaries, filtered by date or month.
func (h *Handler) SubjectAttendance(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subjectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
		return
	}

	claims, _ := auth.FromContext(c)
	name, ok, err := h.attRepo.SubjectOwnedBy(c.Request.Context(), subjectID, claims.UserID)
	if err != nil {
		internalError(c, "failed to fetch subject")
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": attendance.ErrNotFound.Error()})
		return
	}

	date, month := c.Query("date"), c.Query("month")
	rows, err := h.reports.SubjectAttendance(c.Request.Context(), subjectID, date, month)
	if err != nil {
		internalError(c, "failed to fetch attendance")
		return
	}
	summaries, err := h.reports.SessionSummaries(c.Request.Context(), subjectID, date, month)
	if err != nil {
		internalError(c, "failed to fetch attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject":        gin.H{"id": subjectID, "name": name},
		"attendance":     rows,
		"sessionSummary": summaries,
	})
}

// FacultyLeaveRequests lists leave requests from the department's students.
func (h *Handler) FacultyLeaveRequests(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	reqs, err := h.leaveRepo.ListByDepartment(c.Request.Context(), claims.Department)
	if err != nil {
		internalError(c, "failed to fetch leave requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaveRequests": reqs})
}

type leaveActionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ResolveLeave approves or rejects a leave request in the caller's
// department.
func (h *Handler) ResolveLeave(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave request id"})
		return
	}

	var req leaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, _ := auth.FromContext(c)
	if err := h.leave.Resolve(c.Request.Context(), id, claims.Department, req.Status); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": leave.ErrNotFound.Error()})
			return
		}
		internalError(c, "failed to update leave request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Leave request " + req.Status + " successfully"})
}

// ExportAttendance streams the subject's present/absent grid as CSV.
func (h *Handler) ExportAttendance(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subjectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
		return
	}

	claims, _ := auth.FromContext(c)
	name, ok, err := h.attRepo.SubjectOwnedBy(c.Request.Context(), subjectID, claims.UserID)
	if err != nil {
		internalError(c, "failed to fetch subject")
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": attendance.ErrNotFound.Error()})
		return
	}

	rows, err := h.reports.ExportRows(c.Request.Context(), claims.Department, subjectID, c.Query("month"))
	if err != nil {
		internalError(c, "failed to export attendance")
		return
	}
	data, err := reports.WriteCSV(rows)
	if err != nil {
		log.Printf("csv write failed: %v", err)
		internalError(c, "failed to export attendance")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`_attendance.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
