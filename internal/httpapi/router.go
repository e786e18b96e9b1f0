package httpapi

import (
	"github.com/gin-gonic/gin"

	"campusattend/internal/auth"
	"campusattend/internal/users"
)

// Routes registers the /api surface. Authentication and role checks happen
// here; handlers assume both have already passed.
func (h *Handler) Routes(r *gin.Engine) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	bearer := auth.Middleware(h.cfg.JWTSigningKey, h.cfg.JWTIssuer)

	admin := api.Group("/admin", bearer, auth.RequireRole(users.RoleAdmin))
	{
		admin.POST("/faculty", h.CreateFaculty)
		admin.POST("/subjects", h.CreateSubject)
		admin.GET("/faculty", h.AdminListFaculty)
		admin.GET("/subjects", h.AdminListSubjects)
		admin.GET("/analytics", h.Analytics)
	}

	principal := api.Group("/principal", bearer, auth.RequireRole(users.RolePrincipal))
	{
		principal.GET("/faculty", h.PrincipalFaculty)
		principal.GET("/students", h.PrincipalStudents)
		principal.GET("/dashboard", h.Dashboard)
		principal.GET("/attendance-overview", h.AttendanceOverview)
	}

	faculty := api.Group("/faculty", bearer, auth.RequireRole(users.RoleFaculty))
	{
		faculty.GET("/students", h.FacultyStudents)
		faculty.GET("/subjects", h.FacultySubjects)
		faculty.POST("/qr-session", h.CreateQRSession)
		faculty.GET("/qr-session/:id/live", h.SessionLiveCount)
		faculty.GET("/attendance/:subjectId", h.SubjectAttendance)
		faculty.GET("/leave-requests", h.FacultyLeaveRequests)
		faculty.PUT("/leave/:id", h.ResolveLeave)
		faculty.GET("/export/:subjectId", h.ExportAttendance)
	}

	student := api.Group("/student", bearer, auth.RequireRole(users.RoleStudent))
	{
		student.POST("/scan", h.Scan)
		student.GET("/attendance", h.StudentAttendance)
		student.POST("/leave", h.ApplyLeave)
		student.GET("/leave", h.StudentLeaveRequests)
		student.GET("/subjects", h.StudentSubjects)
	}
}
