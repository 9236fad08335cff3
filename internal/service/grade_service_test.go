package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

type mockGradeStore struct {
	affected  int64
	lastGrade float64
	committed bool
}

func (m *mockGradeStore) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	m.committed = true
	return nil
}

func (m *mockGradeStore) UpdateGrade(ctx context.Context, q sqlx.ExtContext, studentID, courseID string, grade float64) (int64, error) {
	m.lastGrade = grade
	return m.affected, nil
}

func TestUpdateGradeRoundsToOneDecimal(t *testing.T) {
	store := &mockGradeStore{affected: 1}
	cache := &mockTranscriptCache{}
	svc := NewGradeService(store, cache, nil, nil, nil)

	affected, err := svc.UpdateGrade(context.Background(), UpdateGradeRequest{StudentID: "stu-1", CourseID: "course-1", Grade: 7.25})
	require.NoError(t, err)

	assert.Equal(t, int64(1), affected)
	assert.Equal(t, 7.3, store.lastGrade)
	assert.True(t, store.committed)
	assert.NotEmpty(t, cache.deleted)
}

func TestUpdateGradeNotFound(t *testing.T) {
	store := &mockGradeStore{affected: 0}
	cache := &mockTranscriptCache{}
	svc := NewGradeService(store, cache, nil, nil, nil)

	_, err := svc.UpdateGrade(context.Background(), UpdateGradeRequest{StudentID: "stu-1", CourseID: "course-1", Grade: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, cache.deleted)
}

func TestUpdateGradeOutOfRange(t *testing.T) {
	svc := NewGradeService(&mockGradeStore{}, nil, nil, nil, nil)

	_, err := svc.UpdateGrade(context.Background(), UpdateGradeRequest{StudentID: "stu-1", CourseID: "course-1", Grade: 11})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
