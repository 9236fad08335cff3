package service

import (
	"context"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type gradeStore interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	UpdateGrade(ctx context.Context, q sqlx.ExtContext, studentID, courseID string, grade float64) (int64, error)
}

// UpdateGradeRequest describes a grade write.
type UpdateGradeRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	CourseID  string  `json:"course_id" validate:"required"`
	Grade     float64 `json:"grade" validate:"gte=0,lte=10"`
}

// GradeService applies grades to existing enrollment rows. Status
// transitions belong to the grading finalization process, not here.
type GradeService struct {
	store     gradeStore
	cache     transcriptCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(store gradeStore, cache transcriptCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// UpdateGrade rounds the grade to one decimal and writes it to the row for
// (student, course). Zero affected rows surfaces as NotFound.
func (s *GradeService) UpdateGrade(ctx context.Context, req UpdateGradeRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	rounded := math.Round(req.Grade*10) / 10

	var affected int64
	start := time.Now()
	err := s.store.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		affected, err = s.store.UpdateGrade(ctx, tx, req.StudentID, req.CourseID, rounded)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
		}
		return nil
	})
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveEnrollmentTx("update_grade", outcome, time.Since(start))
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "no enrollment for student and course")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, transcriptCacheKeys(req.StudentID)...); err != nil {
			s.logger.Warn("transcript cache invalidation failed", zap.String("student_id", req.StudentID), zap.Error(err))
		}
	}
	s.logger.Info("grade updated",
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID),
		zap.Float64("grade", rounded))
	return affected, nil
}
