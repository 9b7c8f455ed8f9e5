package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/service"
	"english-center/backend/internal/timetable"
	"english-center/backend/pkg/jwt"
	"english-center/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
	createResult  *dto.UserResponse
	createErr     error
	listResult    []dto.UserResponse
	listTotal     int64
	listErr       error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) CreateUser(_ context.Context, _ *dto.CreateUserRequest, _ string) (*dto.UserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAuthService) GetMe(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ListUsers(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ── Mock TimetableService ──

type mockTimetableService struct {
	weeklyResult *dto.WeeklyTimetableResponse
	weeklyErr    error
}

func (m *mockTimetableService) GetWeekly(_ context.Context, _ *dto.WeeklyTimetableRequest) (*dto.WeeklyTimetableResponse, error) {
	return m.weeklyResult, m.weeklyErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	createResult *dto.ScheduleResponse
	createErr    error
	getResult    *dto.ScheduleResponse
	getErr       error
	listResult   []dto.ScheduleResponse
	listErr      error
	updateResult *dto.ScheduleResponse
	updateErr    error
	deleteErr    error
}

func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) GetByID(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) List(_ context.Context, _ *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) Update(_ context.Context, _ string, _ *dto.UpdateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock ClassroomService ──

type mockClassroomService struct {
	enrollResult *dto.EnrollmentResponse
	enrollErr    error
}

func (m *mockClassroomService) Create(_ context.Context, _ *dto.CreateClassroomRequest, _ string) (*dto.ClassroomResponse, error) {
	return nil, nil
}
func (m *mockClassroomService) GetByID(_ context.Context, _ string) (*dto.ClassroomResponse, error) {
	return nil, nil
}
func (m *mockClassroomService) List(_ context.Context, _ *dto.ClassroomListRequest) ([]dto.ClassroomResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockClassroomService) Update(_ context.Context, _ string, _ *dto.UpdateClassroomRequest, _ string) (*dto.ClassroomResponse, error) {
	return nil, nil
}
func (m *mockClassroomService) Delete(_ context.Context, _, _ string) error { return nil }
func (m *mockClassroomService) Enroll(_ context.Context, _ string, _ *dto.EnrollRequest, _ string) (*dto.EnrollmentResponse, error) {
	return m.enrollResult, m.enrollErr
}
func (m *mockClassroomService) Unenroll(_ context.Context, _, _, _ string) error { return nil }
func (m *mockClassroomService) ListEnrollments(_ context.Context, _ string) ([]dto.EnrollmentResponse, error) {
	return nil, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStudents(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportScores(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportTimetableICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "Secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@center.vn",
		Password: "WrongPass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_GetMe_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetMe)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := newRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "OldPass123",
		NewPassword: "NewPass123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TimetableHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTimetableHandler_GetWeekly_Success(t *testing.T) {
	mock := &mockTimetableService{
		weeklyResult: &dto.WeeklyTimetableResponse{
			WeekStart:  "2024-03-04",
			WeekEnd:    "2024-03-10",
			WeekNumber: 10,
		},
	}
	h := NewTimetableHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("GET", "/timetable/weekly?date=2024-03-06", nil)

	r := gin.New()
	r.GET("/timetable/weekly", h.GetWeekly)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestTimetableHandler_GetWeekly_MalformedDate(t *testing.T) {
	h := NewTimetableHandler(&mockTimetableService{})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/timetable/weekly?date=06-03-2024", nil)

	r := gin.New()
	r.GET("/timetable/weekly", h.GetWeekly)
	r.ServeHTTP(w, req)

	// 查询参数绑定校验拦截
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTimetableHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"BadDate", service.ErrTimetableBadDate, 400, 18001},
		{"ClassroomNotFound", service.ErrClassroomNotFound, 404, 18002},
		{"TeacherNotFound", service.ErrTeacherNotFound, 404, 18003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTimetableHandler(&mockTimetableService{weeklyErr: tt.err})

			w := newRecorder()
			req := httptest.NewRequest("GET", "/timetable/weekly", nil)

			r := gin.New()
			r.GET("/timetable/weekly", h.GetWeekly)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Create_Conflict(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{createErr: service.ErrScheduleConflict})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/schedules", jsonBody(dto.CreateScheduleRequest{
		ClassroomID: "11111111-1111-1111-1111-111111111111",
		Weekday:     "monday",
		StartTime:   "08:00",
		EndTime:     "09:30",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17006 {
		t.Errorf("expected error code 17006, got %d", resp.Code)
	}
}

func TestScheduleHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrScheduleNotFound, 404, 17001},
		{"ClassroomNotFound", service.ErrClassroomNotFound, 400, 17002},
		{"InvalidWeekday", timetable.ErrInvalidWeekday, 400, 17003},
		{"InvalidTimeFormat", timetable.ErrInvalidTimeFormat, 400, 17004},
		{"InvalidRange", timetable.ErrInvalidScheduleRange, 400, 17005},
		{"Conflict", service.ErrScheduleConflict, 409, 17006},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{getErr: tt.err})

			w := newRecorder()
			req := httptest.NewRequest("GET", "/schedules/sch-1", nil)

			r := gin.New()
			r.GET("/schedules/:id", h.GetSchedule)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ClassroomHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClassroomHandler_Enroll_Full(t *testing.T) {
	h := NewClassroomHandler(&mockClassroomService{enrollErr: service.ErrClassroomFull})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/classrooms/cls-1/enrollments", jsonBody(dto.EnrollRequest{
		StudentID: "22222222-2222-2222-2222-222222222222",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/classrooms/:id/enrollments", func(c *gin.Context) {
		setAuth(c)
		h.Enroll(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16005 {
		t.Errorf("expected error code 16005, got %d", resp.Code)
	}
}

func TestClassroomHandler_Enroll_Duplicate(t *testing.T) {
	h := NewClassroomHandler(&mockClassroomService{enrollErr: service.ErrAlreadyEnrolled})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/classrooms/cls-1/enrollments", jsonBody(dto.EnrollRequest{
		StudentID: "22222222-2222-2222-2222-222222222222",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/classrooms/:id/enrollments", func(c *gin.Context) {
		setAuth(c)
		h.Enroll(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16006 {
		t.Errorf("expected error code 16006, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Students_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "学员名册_IELTS晚班.xlsx",
	}
	h := NewExportHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export/students?classroom_id=cls-1", nil)

	r := gin.New()
	r.GET("/export/students", h.ExportStudents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Students_MissingClassroomID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export/students", nil)

	r := gin.New()
	r.GET("/export/students", h.ExportStudents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_TimetableICS_ContentType(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\nEND:VCALENDAR\n"),
		filename: "课表_IELTS晚班.ics",
	}
	h := NewExportHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export/timetable.ics?classroom_id=cls-1", nil)

	r := gin.New()
	r.GET("/export/timetable.ics", h.ExportTimetableICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != icsContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_NoEnrollments(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoEnrollments})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export/students?classroom_id=cls-1", nil)

	r := gin.New()
	r.GET("/export/students", h.ExportStudents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
