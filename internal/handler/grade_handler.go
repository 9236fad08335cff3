package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/siakad-api/internal/service"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
	"github.com/akademika/siakad-api/pkg/response"
)

type gradeService interface {
	UpdateGrade(ctx context.Context, req service.UpdateGradeRequest) (int64, error)
}

// GradeHandler exposes the grade write endpoint.
type GradeHandler struct {
	grades gradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Update godoc
// @Summary Write a grade onto an enrollment record
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades [put]
func (h *GradeHandler) Update(c *gin.Context) {
	var req service.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	affected, err := h.grades.UpdateGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"affected": affected}, nil)
}
