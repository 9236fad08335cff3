package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akademika/siakad-api/internal/models"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type passedCourseReader interface {
	PassedCourses(ctx context.Context, studentID string, locale models.Locale) ([]models.TranscriptCourse, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type transcriptCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func transcriptCacheKey(studentID string, locale models.Locale) string {
	return fmt.Sprintf("transcript:%s:%s", studentID, locale)
}

func transcriptCacheKeys(studentID string) []string {
	keys := make([]string, 0, len(models.Locales))
	for _, locale := range models.Locales {
		keys = append(keys, transcriptCacheKey(studentID, locale))
	}
	return keys
}

// TranscriptService derives a student's transcript from passed enrollments.
type TranscriptService struct {
	store    passedCourseReader
	students studentReader
	cache    transcriptCache
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewTranscriptService constructs TranscriptService.
func NewTranscriptService(store passedCourseReader, students studentReader, cache transcriptCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{store: store, students: students, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// GetTranscript aggregates passed courses into total credits and GPA. A
// student with no passed courses gets an empty transcript, not an error.
func (s *TranscriptService) GetTranscript(ctx context.Context, studentID string, locale models.Locale) (*models.Transcript, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	key := transcriptCacheKey(studentID, locale)
	if s.cache != nil {
		var cached models.Transcript
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordCacheLookup(true)
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("transcript cache read failed", zap.String("student_id", studentID), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
	}

	courses, err := s.store.PassedCourses(ctx, studentID, locale)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load passed courses")
	}

	transcript := &models.Transcript{
		StudentID:   student.ID,
		StudentName: student.FullName,
		NIM:         student.NIM,
		Courses:     courses,
	}
	var weighted float64
	for _, course := range courses {
		transcript.TotalCredits += course.Credits
		weighted += float64(course.Credits) * course.Grade
	}
	if transcript.TotalCredits > 0 {
		transcript.GPA = weighted / float64(transcript.TotalCredits)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, transcript, s.cacheTTL); err != nil {
			s.logger.Warn("transcript cache write failed", zap.String("student_id", studentID), zap.Error(err))
		}
	}
	return transcript, nil
}
