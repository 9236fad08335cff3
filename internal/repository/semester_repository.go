package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/siakad-api/internal/models"
)

// SemesterRepository reads the academic calendar. Semesters are maintained
// elsewhere and never mutated here.
type SemesterRepository struct {
	db *sqlx.DB
}

// NewSemesterRepository constructs the repository.
func NewSemesterRepository(db *sqlx.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

// FindByID returns a semester with its registration window. Callers handle
// sql.ErrNoRows.
func (r *SemesterRepository) FindByID(ctx context.Context, q sqlx.ExtContext, id string) (*models.Semester, error) {
	const query = `SELECT id, sequence, academic_year, start_date, end_date FROM semesters WHERE id = $1`
	var semester models.Semester
	if err := sqlx.GetContext(ctx, q, &semester, query, id); err != nil {
		return nil, err
	}
	return &semester, nil
}
