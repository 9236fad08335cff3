package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/internal/service"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type enrollmentServiceMock struct {
	registerErr      error
	unregisterErr    error
	historyResp      []models.EnrollmentHistory
	historyErr       error
	lastRegister     service.RegisterClassRequest
	lastFilter       models.HistoryFilter
	registerCalled   bool
	unregisterCalled bool
	historyCalled    bool
}

func (m *enrollmentServiceMock) RegisterClass(ctx context.Context, req service.RegisterClassRequest) error {
	m.registerCalled = true
	m.lastRegister = req
	return m.registerErr
}

func (m *enrollmentServiceMock) UnregisterClass(ctx context.Context, req service.UnregisterClassRequest) error {
	m.unregisterCalled = true
	return m.unregisterErr
}

func (m *enrollmentServiceMock) HistoryBySemester(ctx context.Context, semesterID string, filter models.HistoryFilter) ([]models.EnrollmentHistory, *models.Pagination, error) {
	m.historyCalled = true
	m.lastFilter = filter
	if m.historyErr != nil {
		return nil, nil, m.historyErr
	}
	return m.historyResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.historyResp)}, nil
}

func TestEnrollmentHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(service.RegisterClassRequest{
		StudentID: "stu-1", CourseID: "course-1", ClassID: "class-1", SemesterID: "sem-1",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.registerCalled)
	assert.Equal(t, "class-1", mockSvc.lastRegister.ClassID)
}

func TestEnrollmentHandlerRegisterInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEnrollmentHandler(&enrollmentServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enrollments", bytes.NewBufferString(`{"student_id":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerRegisterClassFull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{registerErr: appErrors.ErrClassFull}
	handler := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(service.RegisterClassRequest{
		StudentID: "stu-1", CourseID: "course-1", ClassID: "class-1", SemesterID: "sem-1",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrClassFull.Code)
}

func TestEnrollmentHandlerUnregister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(mockSvc)

	payload, _ := json.Marshal(service.UnregisterClassRequest{
		StudentID: "stu-1", CourseID: "course-1", SemesterID: "sem-1",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/enrollments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Unregister(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.unregisterCalled)
}

func TestEnrollmentHandlerHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{
		historyResp: []models.EnrollmentHistory{{ID: "h-1", Action: models.HistoryActionRegister}},
	}
	handler := NewEnrollmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/semesters/sem-1/enrollment-history?action=register&page=2&pageSize=10", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sem-1"}}

	handler.History(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.historyCalled)
	assert.Equal(t, models.HistoryActionRegister, mockSvc.lastFilter.Action)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 10, mockSvc.lastFilter.PageSize)
}
