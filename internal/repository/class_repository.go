package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/siakad-api/internal/models"
)

// ClassRepository reads class sections. Section maintenance lives in the
// curriculum module; registration only reads and locks rows.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, course_id, semester_id, lecturer_id, max_students, schedule, room`

// FindByID returns a class section. Callers handle sql.ErrNoRows.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT ` + classColumns + ` FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// FindByIDForUpdate loads a class section and takes a row lock for the rest
// of the transaction, serializing concurrent capacity checks against the
// same section.
func (r *ClassRepository) FindByIDForUpdate(ctx context.Context, q sqlx.ExtContext, id string) (*models.Class, error) {
	const query = `SELECT ` + classColumns + ` FROM classes WHERE id = $1 FOR UPDATE`
	var class models.Class
	if err := sqlx.GetContext(ctx, q, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}
