package models

import "time"

// EnrollmentStatus represents the lifecycle of a course enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. A row moves back from passed/failed to
// enrolled only through re-registration.
const (
	EnrollmentStatusEnrolled EnrollmentStatus = "enrolled"
	EnrollmentStatusPassed   EnrollmentStatus = "passed"
	EnrollmentStatusFailed   EnrollmentStatus = "failed"
)

// Enrollment captures a student's relationship to one course across attempts.
// (student_id, course_id) identifies at most one current row; grade is set
// only once the status is passed or failed.
type Enrollment struct {
	StudentID  string           `db:"student_id" json:"student_id"`
	CourseID   string           `db:"course_id" json:"course_id"`
	ClassID    string           `db:"class_id" json:"class_id"`
	SemesterID string           `db:"semester_id" json:"semester_id"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	Grade      *float64         `db:"grade" json:"grade,omitempty"`
}

// HistoryAction enumerates auditable registration actions.
type HistoryAction string

const (
	HistoryActionRegister HistoryAction = "register"
	HistoryActionCancel   HistoryAction = "cancel"
)

// EnrollmentHistory is an append-only audit record. Rows are never updated or deleted.
type EnrollmentHistory struct {
	ID         string        `db:"id" json:"id"`
	StudentID  string        `db:"student_id" json:"student_id"`
	CourseID   string        `db:"course_id" json:"course_id"`
	ClassID    string        `db:"class_id" json:"class_id"`
	SemesterID string        `db:"semester_id" json:"semester_id"`
	Action     HistoryAction `db:"action" json:"action"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// HistoryFilter provides filters for listing audit entries of a semester.
type HistoryFilter struct {
	Action   HistoryAction
	Page     int
	PageSize int
}
