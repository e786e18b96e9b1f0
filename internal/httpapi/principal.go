package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusattend/internal/users"
)

// PrincipalFaculty returns the faculty roster.
func (h *Handler) PrincipalFaculty(c *gin.Context) {
	faculty, err := h.userRepo.ListByRole(c.Request.Context(), users.RoleFaculty)
	if err != nil {
		internalError(c, "failed to fetch faculty")
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

// PrincipalStudents returns the student roster.
func (h *Handler) PrincipalStudents(c *gin.Context) {
	students, err := h.userRepo.ListByRole(c.Request.Context(), users.RoleStudent)
	if err != nil {
		internalError(c, "failed to fetch students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// Dashboard returns institution-wide counts and recent sessions.
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		internalError(c, "failed to fetch dashboard data")
		return
	}
	c.JSON(http.StatusOK, d)
}

// AttendanceOverview aggregates attendance per student and subject.
func (h *Handler) AttendanceOverview(c *gin.Context) {
	rows, err := h.reports.Overview(c.Request.Context(), c.Query("department"), c.Query("month"))
	if err != nil {
		internalError(c, "failed to fetch attendance overview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendanceData": rows})
}
