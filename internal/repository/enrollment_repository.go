package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika/siakad-api/internal/models"
)

// EnrollmentRepository owns persistence of enrollment rows and their audit
// trail. Multi-statement mutations run through InTx so every statement of a
// logical operation shares one transaction handle.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// InTx runs fn inside a transaction, rolling back on error and committing
// otherwise.
func (r *EnrollmentRepository) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enrollment tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit enrollment tx: %w", err)
	}
	return nil
}

// CountByClass returns the number of enrollment rows, any status, held
// against a class section. Rows are reused across attempts, so this is the
// capacity basis.
func (r *EnrollmentRepository) CountByClass(ctx context.Context, q sqlx.ExtContext, classID, courseID, semesterID string) (int, error) {
	const query = `SELECT COUNT(*) FROM course_enrollments WHERE class_id = $1 AND course_id = $2 AND semester_id = $3`
	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, classID, courseID, semesterID); err != nil {
		return 0, fmt.Errorf("count class enrollments: %w", err)
	}
	return count, nil
}

// ReactivateCompleted turns a prior passed/failed row for (student, course)
// back into an enrolled one, clearing the grade and repointing class and
// semester. Returns the number of rows affected; zero means there was no
// completed attempt to reuse.
func (r *EnrollmentRepository) ReactivateCompleted(ctx context.Context, q sqlx.ExtContext, studentID, courseID, classID, semesterID string) (int64, error) {
	query, args, ok := newUpdateBuilder("course_enrollments").
		Set("class_id", classID).
		Set("semester_id", semesterID).
		Set("status", models.EnrollmentStatusEnrolled).
		Set("grade", nil).
		Where("student_id", studentID).
		Where("course_id", courseID).
		WhereIn("status", models.EnrollmentStatusPassed, models.EnrollmentStatusFailed).
		Build()
	if !ok {
		return 0, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reactivate enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reactivate enrollment rows: %w", err)
	}
	return affected, nil
}

// Insert persists a fresh enrollment row.
func (r *EnrollmentRepository) Insert(ctx context.Context, q sqlx.ExtContext, enrollment *models.Enrollment) error {
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusEnrolled
	}
	const query = `INSERT INTO course_enrollments (student_id, course_id, class_id, semester_id, status, grade)
        VALUES (:student_id, :course_id, :class_id, :semester_id, :status, :grade)`
	if _, err := sqlx.NamedExecContext(ctx, q, query, enrollment); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// DeleteEnrolled removes the current row for (student, course) only while it
// is still in the enrolled state, returning the class it pointed at so the
// audit entry can reference it. found is false when no enrolled row existed;
// completed attempts stay untouched.
func (r *EnrollmentRepository) DeleteEnrolled(ctx context.Context, q sqlx.ExtContext, studentID, courseID string) (classID string, found bool, err error) {
	const query = `DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = $2 AND status = $3 RETURNING class_id`
	if err := sqlx.GetContext(ctx, q, &classID, query, studentID, courseID, models.EnrollmentStatusEnrolled); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("delete enrollment: %w", err)
	}
	return classID, true, nil
}

// InsertHistory appends one audit entry and reports how many rows landed.
func (r *EnrollmentRepository) InsertHistory(ctx context.Context, q sqlx.ExtContext, entry *models.EnrollmentHistory) (int64, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollment_history (id, student_id, course_id, class_id, semester_id, action, created_at)
        VALUES (:id, :student_id, :course_id, :class_id, :semester_id, :action, :created_at)`
	res, err := sqlx.NamedExecContext(ctx, q, query, entry)
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert history rows: %w", err)
	}
	return affected, nil
}

// UpdateGrade writes the grade for (student, course) regardless of status.
// Status transitions are owned by the grading finalization process.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, q sqlx.ExtContext, studentID, courseID string, grade float64) (int64, error) {
	query, args, ok := newUpdateBuilder("course_enrollments").
		Set("grade", grade).
		Where("student_id", studentID).
		Where("course_id", courseID).
		Build()
	if !ok {
		return 0, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update grade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update grade rows: %w", err)
	}
	return affected, nil
}

// PassedCourseIDs reports which of the given courses the student has a
// passed row for.
func (r *EnrollmentRepository) PassedCourseIDs(ctx context.Context, q sqlx.ExtContext, studentID string, courseIDs []string) (map[string]bool, error) {
	passed := make(map[string]bool, len(courseIDs))
	if len(courseIDs) == 0 {
		return passed, nil
	}
	placeholders := make([]string, len(courseIDs))
	args := make([]interface{}, 0, len(courseIDs)+2)
	args = append(args, studentID, models.EnrollmentStatusPassed)
	for i, id := range courseIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(`SELECT course_id FROM course_enrollments WHERE student_id = $1 AND status = $2 AND course_id IN (%s)`,
		strings.Join(placeholders, ","))
	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query passed prerequisites: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan passed course id: %w", err)
		}
		passed[id] = true
	}
	return passed, rows.Err()
}

// PassedCourses returns the transcript lines for a student, resolving course
// names in the requested locale.
func (r *EnrollmentRepository) PassedCourses(ctx context.Context, studentID string, locale models.Locale) ([]models.TranscriptCourse, error) {
	query := fmt.Sprintf(`SELECT e.course_id, c.%s AS name, c.credits, e.grade
        FROM course_enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = $1 AND e.status = $2
        ORDER BY name`, locale.NameColumn())
	var courses []models.TranscriptCourse
	if err := r.db.SelectContext(ctx, &courses, query, studentID, models.EnrollmentStatusPassed); err != nil {
		return nil, fmt.Errorf("list passed courses: %w", err)
	}
	return courses, nil
}

// HistoryBySemester returns the audit entries recorded against one semester.
func (r *EnrollmentRepository) HistoryBySemester(ctx context.Context, semesterID string, filter models.HistoryFilter) ([]models.EnrollmentHistory, int, error) {
	base := "FROM enrollment_history WHERE semester_id = $1"
	args := []interface{}{semesterID}
	if filter.Action != "" {
		args = append(args, filter.Action)
		base += fmt.Sprintf(" AND action = $%d", len(args))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, student_id, course_id, class_id, semester_id, action, created_at
        %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)
	var entries []models.EnrollmentHistory
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list history entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count history entries: %w", err)
	}
	return entries, total, nil
}
