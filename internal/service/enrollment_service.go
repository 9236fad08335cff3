package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/akademika/siakad-api/internal/models"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type enrollmentStore interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	CountByClass(ctx context.Context, q sqlx.ExtContext, classID, courseID, semesterID string) (int, error)
	ReactivateCompleted(ctx context.Context, q sqlx.ExtContext, studentID, courseID, classID, semesterID string) (int64, error)
	Insert(ctx context.Context, q sqlx.ExtContext, enrollment *models.Enrollment) error
	DeleteEnrolled(ctx context.Context, q sqlx.ExtContext, studentID, courseID string) (classID string, found bool, err error)
	InsertHistory(ctx context.Context, q sqlx.ExtContext, entry *models.EnrollmentHistory) (int64, error)
	PassedCourseIDs(ctx context.Context, q sqlx.ExtContext, studentID string, courseIDs []string) (map[string]bool, error)
	HistoryBySemester(ctx context.Context, semesterID string, filter models.HistoryFilter) ([]models.EnrollmentHistory, int, error)
}

type semesterReader interface {
	FindByID(ctx context.Context, q sqlx.ExtContext, id string) (*models.Semester, error)
}

type classLocker interface {
	FindByIDForUpdate(ctx context.Context, q sqlx.ExtContext, id string) (*models.Class, error)
}

type prerequisiteReader interface {
	PrerequisiteIDs(ctx context.Context, q sqlx.ExtContext, courseID string) ([]string, error)
}

// RegisterClassRequest describes a registration request.
type RegisterClassRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	CourseID   string `json:"course_id" validate:"required"`
	ClassID    string `json:"class_id" validate:"required"`
	SemesterID string `json:"semester_id" validate:"required"`
}

// UnregisterClassRequest describes a cancellation request.
type UnregisterClassRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	CourseID   string `json:"course_id" validate:"required"`
	SemesterID string `json:"semester_id" validate:"required"`
}

// EnrollmentService coordinates register/unregister as one transaction each:
// lock, validate, mutate, audit, commit. Any failure rolls the whole unit back.
type EnrollmentService struct {
	store     enrollmentStore
	semesters semesterReader
	classes   classLocker
	courses   prerequisiteReader
	cache     transcriptCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(store enrollmentStore, semesters semesterReader, classes classLocker, courses prerequisiteReader, cache transcriptCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		store:     store,
		semesters: semesters,
		classes:   classes,
		courses:   courses,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RegisterClass enrolls a student into a class section. A completed prior
// attempt for the same course is reactivated instead of duplicated.
func (s *EnrollmentService) RegisterClass(ctx context.Context, req RegisterClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	start := s.now()
	err := s.store.InTx(ctx, func(tx *sqlx.Tx) error {
		// Lock the section row first so the capacity check and the write
		// below cannot interleave with a concurrent registration.
		class, err := s.classes.FindByIDForUpdate(ctx, tx, req.ClassID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "class not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
		}
		semester, err := s.semesters.FindByID(ctx, tx, req.SemesterID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "semester not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semester")
		}
		enrolled, err := s.store.CountByClass(ctx, tx, req.ClassID, req.CourseID, req.SemesterID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
		}
		prereqIDs, err := s.courses.PrerequisiteIDs(ctx, tx, req.CourseID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prerequisites")
		}
		passed := map[string]bool{}
		if len(prereqIDs) > 0 {
			passed, err = s.store.PassedCourseIDs(ctx, tx, req.StudentID, prereqIDs)
			if err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check prerequisites")
			}
		}

		reason := CheckRegistration(RegistrationFacts{
			Now:             s.now(),
			Semester:        semester,
			Class:           class,
			Enrolled:        enrolled,
			PrerequisiteIDs: prereqIDs,
			Passed:          passed,
		})
		if reason != ReasonNone {
			s.logger.Info("registration rejected",
				zap.String("student_id", req.StudentID),
				zap.String("class_id", req.ClassID),
				zap.String("reason", reason.String()))
			return reason.Err()
		}

		reused, err := s.store.ReactivateCompleted(ctx, tx, req.StudentID, req.CourseID, req.ClassID, req.SemesterID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enrollment")
		}
		if reused == 0 {
			enrollment := &models.Enrollment{
				StudentID:  req.StudentID,
				CourseID:   req.CourseID,
				ClassID:    req.ClassID,
				SemesterID: req.SemesterID,
				Status:     models.EnrollmentStatusEnrolled,
			}
			if err := s.store.Insert(ctx, tx, enrollment); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
			}
		}

		return s.appendHistory(ctx, tx, req.StudentID, req.CourseID, req.ClassID, req.SemesterID, models.HistoryActionRegister)
	})
	s.observeTx("register", start, err)
	if err != nil {
		return err
	}

	s.invalidateTranscript(ctx, req.StudentID)
	s.logger.Info("class registered",
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID),
		zap.String("class_id", req.ClassID))
	return nil
}

// UnregisterClass cancels an active enrollment strictly before the semester
// starts. Completed attempts cannot be cancelled.
func (s *EnrollmentService) UnregisterClass(ctx context.Context, req UnregisterClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cancellation payload")
	}

	start := s.now()
	err := s.store.InTx(ctx, func(tx *sqlx.Tx) error {
		semester, err := s.semesters.FindByID(ctx, tx, req.SemesterID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "semester not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semester")
		}

		if reason := CheckCancellation(s.now(), semester); reason != ReasonNone {
			s.logger.Info("cancellation rejected",
				zap.String("student_id", req.StudentID),
				zap.String("course_id", req.CourseID),
				zap.String("reason", reason.String()))
			return reason.Err()
		}

		classID, found, err := s.store.DeleteEnrolled(ctx, tx, req.StudentID, req.CourseID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
		}
		if !found {
			return appErrors.Clone(appErrors.ErrNotFound, "no active enrollment to cancel")
		}

		return s.appendHistory(ctx, tx, req.StudentID, req.CourseID, classID, req.SemesterID, models.HistoryActionCancel)
	})
	s.observeTx("unregister", start, err)
	if err != nil {
		return err
	}

	s.invalidateTranscript(ctx, req.StudentID)
	s.logger.Info("class unregistered",
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID))
	return nil
}

// HistoryBySemester lists audit entries for a semester with pagination.
func (s *EnrollmentService) HistoryBySemester(ctx context.Context, semesterID string, filter models.HistoryFilter) ([]models.EnrollmentHistory, *models.Pagination, error) {
	entries, total, err := s.store.HistoryBySemester(ctx, semesterID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollment history")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return entries, pagination, nil
}

func (s *EnrollmentService) appendHistory(ctx context.Context, tx *sqlx.Tx, studentID, courseID, classID, semesterID string, action models.HistoryAction) error {
	entry := &models.EnrollmentHistory{
		StudentID:  studentID,
		CourseID:   courseID,
		ClassID:    classID,
		SemesterID: semesterID,
		Action:     action,
		CreatedAt:  s.now(),
	}
	affected, err := s.store.InsertHistory(ctx, tx, entry)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record history entry")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrOperationFailed, "history entry was not recorded")
	}
	return nil
}

func (s *EnrollmentService) observeTx(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveEnrollmentTx(operation, outcome, s.now().Sub(start))
}

func (s *EnrollmentService) invalidateTranscript(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, transcriptCacheKeys(studentID)...); err != nil {
		s.logger.Warn("transcript cache invalidation failed", zap.String("student_id", studentID), zap.Error(err))
	}
}
