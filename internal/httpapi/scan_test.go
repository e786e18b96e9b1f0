package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusattend/internal/attendance"
	"campusattend/internal/auth"
	"campusattend/internal/config"
)

type fakeIssuer struct {
	session attendance.Session
	err     error
}

func (f *fakeIssuer) CreateSession(context.Context, int64, int64) (attendance.Session, error) {
	return f.session, f.err
}

type fakeRecorder struct {
	conf attendance.Confirmation
	err  error
}

func (f *fakeRecorder) MarkAttendance(context.Context, string, int64) (attendance.Confirmation, error) {
	return f.conf, f.err
}

func newTestRouter(issuer SessionIssuer, recorder AttendanceRecorder, claims auth.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(config.App{}, nil, nil, nil, issuer, recorder, nil, nil, nil, nil, nil, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.ClaimsKey, claims)
		c.Next()
	})
	r.POST("/api/student/scan", h.Scan)
	r.POST("/api/faculty/qr-session", h.CreateQRSession)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScanHandler(t *testing.T) {
	recorder := &fakeRecorder{conf: attendance.Confirmation{
		SessionID:   7,
		SubjectName: "Data Structures",
		FacultyName: "Dr. Rao",
		MarkedAt:    time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC),
	}}
	r := newTestRouter(nil, recorder, auth.Claims{UserID: 100, Role: "student"})

	w := doJSON(t, r, "/api/student/scan", `{"qr_token":"tok-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Attendance marked successfully")
	assert.Contains(t, w.Body.String(), "Dr. Rao")
}

func TestScanHandlerInvalidOrExpired(t *testing.T) {
	recorder := &fakeRecorder{err: attendance.ErrInvalidOrExpired}
	r := newTestRouter(nil, recorder, auth.Claims{UserID: 100, Role: "student"})

	w := doJSON(t, r, "/api/student/scan", `{"qr_token":"stale"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired")
}

func TestScanHandlerAlreadyMarked(t *testing.T) {
	recorder := &fakeRecorder{err: attendance.ErrAlreadyMarked}
	r := newTestRouter(nil, recorder, auth.Claims{UserID: 100, Role: "student"})

	w := doJSON(t, r, "/api/student/scan", `{"qr_token":"tok-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already marked")
}

func TestScanHandlerMissingToken(t *testing.T) {
	r := newTestRouter(nil, &fakeRecorder{}, auth.Claims{UserID: 100, Role: "student"})
	w := doJSON(t, r, "/api/student/scan", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQRSessionHandler(t *testing.T) {
	expires := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
	issuer := &fakeIssuer{session: attendance.Session{
		ID:          7,
		SubjectName: "Data Structures",
		Token:       "tok-1",
		ExpiresAt:   expires,
	}}
	r := newTestRouter(issuer, nil, auth.Claims{UserID: 10, Role: "faculty"})

	w := doJSON(t, r, "/api/faculty/qr-session", `{"subject_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok-1"`)
	assert.Contains(t, w.Body.String(), "data:image/png;base64,")
}

func TestCreateQRSessionSubjectNotFound(t *testing.T) {
	issuer := &fakeIssuer{err: attendance.ErrNotFound}
	r := newTestRouter(issuer, nil, auth.Claims{UserID: 10, Role: "faculty"})

	w := doJSON(t, r, "/api/faculty/qr-session", `{"subject_id":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
