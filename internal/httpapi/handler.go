// Package httpapi wires the role-scoped REST surface onto the domain
// services.
package httpapi

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusattend/internal/attendance"
	"campusattend/internal/config"
	"campusattend/internal/leave"
	"campusattend/internal/queue"
	"campusattend/internal/reports"
	"campusattend/internal/store"
	"campusattend/internal/subjects"
	"campusattend/internal/users"
)

// SessionIssuer mints QR attendance sessions.
type SessionIssuer interface {
	CreateSession(ctx context.Context, subjectID, facultyID int64) (attendance.Session, error)
}

// AttendanceRecorder converts scanned tokens into attendance records.
type AttendanceRecorder interface {
	MarkAttendance(ctx context.Context, raw string, studentID int64) (attendance.Confirmation, error)
}

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	cfg       config.App
	users     *users.Service
	userRepo  *users.Repository
	subjects  *subjects.Repository
	issuer    SessionIssuer
	recorder  AttendanceRecorder
	attRepo   *attendance.Repository
	leave     *leave.Service
	leaveRepo *leave.Repository
	reports   *reports.Repository
	redis     *store.Redis
	queue     queue.Queue
}

// New creates a handler.
func New(
	cfg config.App,
	userSvc *users.Service,
	userRepo *users.Repository,
	subjectRepo *subjects.Repository,
	issuer SessionIssuer,
	recorder AttendanceRecorder,
	attRepo *attendance.Repository,
	leaveSvc *leave.Service,
	leaveRepo *leave.Repository,
	reportRepo *reports.Repository,
	rdb *store.Redis,
	q queue.Queue,
) *Handler {
	return &Handler{
		cfg:       cfg,
		users:     userSvc,
		userRepo:  userRepo,
		subjects:  subjectRepo,
		issuer:    issuer,
		recorder:  recorder,
		attRepo:   attRepo,
		leave:     leaveSvc,
		leaveRepo: leaveRepo,
		reports:   reportRepo,
		redis:     rdb,
		queue:     q,
	}
}

func internalError(c *gin.Context, msg string) {
	c.JSON(500, gin.H{"error": msg})
}

// liveCountKey is the Redis key the worker increments per session.
func liveCountKey(sessionID int64) string {
	return "campusattend:live:" + itoa64(sessionID)
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}
