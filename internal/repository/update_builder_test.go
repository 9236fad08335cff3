package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBuilder(t *testing.T) {
	query, args, ok := newUpdateBuilder("course_enrollments").
		Set("status", "enrolled").
		Set("grade", nil).
		Where("student_id", "stu-1").
		WhereIn("status", "passed", "failed").
		Build()

	assert.True(t, ok)
	assert.Equal(t, "UPDATE course_enrollments SET status = $1, grade = NULL WHERE student_id = $2 AND status IN ($3, $4)", query)
	assert.Equal(t, []interface{}{"enrolled", "stu-1", "passed", "failed"}, args)
}

func TestUpdateBuilderNoWhere(t *testing.T) {
	query, args, ok := newUpdateBuilder("courses").
		Set("active", true).
		Build()

	assert.True(t, ok)
	assert.Equal(t, "UPDATE courses SET active = $1", query)
	assert.Equal(t, []interface{}{true}, args)
}

func TestUpdateBuilderNoAssignments(t *testing.T) {
	_, _, ok := newUpdateBuilder("courses").
		Where("id", "c-1").
		Build()

	assert.False(t, ok)
}
