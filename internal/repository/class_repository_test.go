package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRepositoryFindByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewClassRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "course_id", "semester_id", "lecturer_id", "max_students", "schedule", "room"}).
		AddRow("class-1", "course-1", "sem-1", "lect-1", 40, "Mon 08:00", "R-201")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_id, semester_id, lecturer_id, max_students, schedule, room FROM classes WHERE id = $1 FOR UPDATE")).
		WithArgs("class-1").
		WillReturnRows(rows)

	class, err := repo.FindByIDForUpdate(context.Background(), sqlxDB, "class-1")
	require.NoError(t, err)
	assert.Equal(t, 40, class.MaxStudents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewClassRepository(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery("SELECT id, course_id, semester_id, lecturer_id, max_students, schedule, room FROM classes").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
