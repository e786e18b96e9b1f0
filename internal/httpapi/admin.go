package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusattend/internal/subjects"
	"campusattend/internal/users"
)

type createFacultyRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required,max=100"`
}

// CreateFaculty provisions a faculty account.
func (h *Handler) CreateFaculty(c *gin.Context) {
	var req createFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, users.RoleFaculty, req.Department)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": users.ErrEmailTaken.Error()})
			return
		}
		internalError(c, "failed to create faculty")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Faculty created successfully", "faculty": u})
}

type createSubjectRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	FacultyID  int64  `json:"faculty_id" binding:"required,gt=0"`
	Department string `json:"department" binding:"required,max=100"`
}

// CreateSubject registers a subject under a faculty owner.
func (h *Handler) CreateSubject(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subjects.Insert(c.Request.Context(), req.Name, req.FacultyID, req.Department)
	if err != nil {
		if errors.Is(err, subjects.ErrFacultyNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": subjects.ErrFacultyNotFound.Error()})
			return
		}
		internalError(c, "failed to create subject")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subject created successfully", "subject": sub})
}

// AdminListFaculty returns all faculty accounts.
func (h *Handler) AdminListFaculty(c *gin.Context) {
	faculty, err := h.userRepo.ListByRole(c.Request.Context(), users.RoleFaculty)
	if err != nil {
		internalError(c, "failed to fetch faculty")
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

// AdminListSubjects returns all subjects with their owners.
func (h *Handler) AdminListSubjects(c *gin.Context) {
	subs, err := h.subjects.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, "failed to fetch subjects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subs})
}

// Analytics returns system-wide totals.
func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.reports.Analytics(c.Request.Context())
	if err != nil {
		internalError(c, "failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, a)
}
