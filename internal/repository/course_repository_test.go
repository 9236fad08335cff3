package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/siakad-api/internal/models"
)

func TestCourseRepositoryFindByIDLocale(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewCourseRepository(sqlx.NewDb(db, "sqlmock"))

	rows := sqlmock.NewRows([]string{"id", "name", "credits", "faculty_id", "active"}).
		AddRow("c-1", "Algorithms", 3, "fac-1", true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name_en AS name, credits, faculty_id, active FROM courses WHERE id = $1")).
		WithArgs("c-1").
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), "c-1", models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", course.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryPrerequisiteIDs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewCourseRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"prerequisite_id"}).AddRow("c-0").AddRow("c-1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT prerequisite_id FROM course_prerequisites WHERE course_id = $1")).
		WithArgs("c-2").
		WillReturnRows(rows)

	ids, err := repo.PrerequisiteIDs(context.Background(), sqlxDB, "c-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c-0", "c-1"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
