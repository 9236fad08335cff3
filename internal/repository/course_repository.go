package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/siakad-api/internal/models"
)

// CourseRepository reads course metadata and the prerequisite graph.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course with its name resolved in the given locale.
// Callers handle sql.ErrNoRows.
func (r *CourseRepository) FindByID(ctx context.Context, id string, locale models.Locale) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT id, %s AS name, credits, faculty_id, active FROM courses WHERE id = $1`, locale.NameColumn())
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// PrerequisiteIDs returns the course ids that must be passed before
// enrolling in the given course. An empty result means no prerequisites.
func (r *CourseRepository) PrerequisiteIDs(ctx context.Context, q sqlx.ExtContext, courseID string) ([]string, error) {
	const query = `SELECT prerequisite_id FROM course_prerequisites WHERE course_id = $1`
	var ids []string
	if err := sqlx.SelectContext(ctx, q, &ids, query, courseID); err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}
	return ids, nil
}
