package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/internal/service"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
	"github.com/akademika/siakad-api/pkg/response"
)

type enrollmentService interface {
	RegisterClass(ctx context.Context, req service.RegisterClassRequest) error
	UnregisterClass(ctx context.Context, req service.UnregisterClassRequest) error
	HistoryBySemester(ctx context.Context, semesterID string, filter models.HistoryFilter) ([]models.EnrollmentHistory, *models.Pagination, error)
}

// EnrollmentHandler exposes registration endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Register godoc
// @Summary Register a student into a class section
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.RegisterClassRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Register(c *gin.Context) {
	var req service.RegisterClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollments.RegisterClass(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"status": "registered"})
}

// Unregister godoc
// @Summary Cancel an active enrollment before the semester starts
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.UnregisterClassRequest true "Cancellation payload"
// @Success 204
// @Router /enrollments [delete]
func (h *EnrollmentHandler) Unregister(c *gin.Context) {
	var req service.UnregisterClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollments.UnregisterClass(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// History godoc
// @Summary List the enrollment audit trail of a semester
// @Tags Enrollments
// @Produce json
// @Param id path string true "Semester ID"
// @Param action query string false "Filter by action (register|cancel)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /semesters/{id}/enrollment-history [get]
func (h *EnrollmentHandler) History(c *gin.Context) {
	filter := models.HistoryFilter{
		Action:   models.HistoryAction(c.Query("action")),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "pageSize"),
	}
	entries, pagination, err := h.enrollments.HistoryBySemester(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
