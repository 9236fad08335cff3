package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/siakad-api/internal/models"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type mockPassedCourseReader struct {
	courses []models.TranscriptCourse
}

func (m *mockPassedCourseReader) PassedCourses(ctx context.Context, studentID string, locale models.Locale) ([]models.TranscriptCourse, error) {
	return m.courses, nil
}

type mockStudentReader struct {
	student *models.Student
}

func (m *mockStudentReader) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if m.student == nil {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

type storingTranscriptCache struct {
	values map[string][]byte
}

func (c *storingTranscriptCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *storingTranscriptCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.values == nil {
		c.values = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *storingTranscriptCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func TestGetTranscriptGPA(t *testing.T) {
	store := &mockPassedCourseReader{courses: []models.TranscriptCourse{
		{CourseID: "c-1", Name: "Algorithms", Credits: 3, Grade: 8.0},
		{CourseID: "c-2", Name: "Databases", Credits: 4, Grade: 6.5},
	}}
	students := &mockStudentReader{student: &models.Student{ID: "stu-1", FullName: "Siti Rahma", NIM: "2101234"}}
	svc := NewTranscriptService(store, students, nil, time.Minute, nil, nil)

	transcript, err := svc.GetTranscript(context.Background(), "stu-1", models.LocaleEnglish)
	require.NoError(t, err)

	assert.Equal(t, 7, transcript.TotalCredits)
	assert.InDelta(t, 50.0/7.0, transcript.GPA, 1e-9)
	assert.Len(t, transcript.Courses, 2)
	assert.Equal(t, "Siti Rahma", transcript.StudentName)
}

func TestGetTranscriptEmpty(t *testing.T) {
	store := &mockPassedCourseReader{}
	students := &mockStudentReader{student: &models.Student{ID: "stu-1", FullName: "Siti Rahma"}}
	svc := NewTranscriptService(store, students, nil, time.Minute, nil, nil)

	transcript, err := svc.GetTranscript(context.Background(), "stu-1", models.LocaleEnglish)
	require.NoError(t, err)

	assert.Zero(t, transcript.TotalCredits)
	assert.Zero(t, transcript.GPA)
	assert.Empty(t, transcript.Courses)
}

func TestGetTranscriptStudentNotFound(t *testing.T) {
	svc := NewTranscriptService(&mockPassedCourseReader{}, &mockStudentReader{}, nil, time.Minute, nil, nil)

	_, err := svc.GetTranscript(context.Background(), "missing", models.LocaleEnglish)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetTranscriptCachesPerLocale(t *testing.T) {
	store := &mockPassedCourseReader{courses: []models.TranscriptCourse{
		{CourseID: "c-1", Name: "Algoritma", Credits: 3, Grade: 9.0},
	}}
	students := &mockStudentReader{student: &models.Student{ID: "stu-1", FullName: "Siti Rahma"}}
	cache := &storingTranscriptCache{}
	svc := NewTranscriptService(store, students, cache, time.Minute, nil, nil)

	_, err := svc.GetTranscript(context.Background(), "stu-1", models.LocaleIndonesian)
	require.NoError(t, err)
	assert.Contains(t, cache.values, "transcript:stu-1:id")
	assert.NotContains(t, cache.values, "transcript:stu-1:en")

	// Second read is served from the cache even if the store changes.
	store.courses = nil
	transcript, err := svc.GetTranscript(context.Background(), "stu-1", models.LocaleIndonesian)
	require.NoError(t, err)
	assert.Equal(t, 3, transcript.TotalCredits)
}
