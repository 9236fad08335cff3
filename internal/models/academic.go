package models

import "time"

// Semester models one registration period within an academic year.
// Semesters are created by the academic calendar module and are read-only here.
type Semester struct {
	ID           string    `db:"id" json:"id"`
	Sequence     int       `db:"sequence" json:"sequence"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
}

// Class models a scheduled section of a course within a semester.
type Class struct {
	ID          string `db:"id" json:"id"`
	CourseID    string `db:"course_id" json:"course_id"`
	SemesterID  string `db:"semester_id" json:"semester_id"`
	LecturerID  string `db:"lecturer_id" json:"lecturer_id"`
	MaxStudents int    `db:"max_students" json:"max_students"`
	Schedule    string `db:"schedule" json:"schedule"`
	Room        string `db:"room" json:"room"`
}

// Course models course metadata. Name is resolved from the localized column
// selected by the locale passed into the query.
type Course struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Credits   int    `db:"credits" json:"credits"`
	FacultyID string `db:"faculty_id" json:"faculty_id"`
	Active    bool   `db:"active" json:"active"`
}

// Student models the roster entry needed for transcript rendering.
type Student struct {
	ID        string `db:"id" json:"id"`
	FullName  string `db:"full_name" json:"full_name"`
	NIM       string `db:"nim" json:"nim"`
	ProgramID string `db:"program_id" json:"program_id"`
}
