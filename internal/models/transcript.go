package models

// TranscriptCourse is one passed course line on a transcript.
type TranscriptCourse struct {
	CourseID string  `db:"course_id" json:"course_id"`
	Name     string  `db:"name" json:"name"`
	Credits  int     `db:"credits" json:"credits"`
	Grade    float64 `db:"grade" json:"grade"`
}

// Transcript is the derived summary of a student's passed courses. It is
// computed on demand and never persisted.
type Transcript struct {
	StudentID    string             `json:"student_id"`
	StudentName  string             `json:"student_name"`
	NIM          string             `json:"nim"`
	Courses      []TranscriptCourse `json:"courses"`
	TotalCredits int                `json:"total_credits"`
	// GPA is the credit-weighted mean of passed grades, unrounded.
	// Presentation formats it.
	GPA float64 `json:"gpa"`
}
