package service

import (
	"time"

	"github.com/akademika/siakad-api/internal/models"
	appErrors "github.com/akademika/siakad-api/pkg/errors"
)

// Reason is the typed outcome of an eligibility check. ReasonNone means the
// operation may proceed; anything else names the rule that rejected it.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonSemesterClosed
	ReasonClassFull
	ReasonPrerequisitesNotMet
	ReasonRegistrationWindowClosed
)

// String names the reason for logs.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSemesterClosed:
		return "semester_closed"
	case ReasonClassFull:
		return "class_full"
	case ReasonPrerequisitesNotMet:
		return "prerequisites_not_met"
	case ReasonRegistrationWindowClosed:
		return "registration_window_closed"
	default:
		return "unknown"
	}
}

// Err converts the reason into the API error surfaced to callers. Nil for
// ReasonNone.
func (r Reason) Err() *appErrors.Error {
	switch r {
	case ReasonNone:
		return nil
	case ReasonSemesterClosed:
		return appErrors.ErrSemesterClosed
	case ReasonClassFull:
		return appErrors.ErrClassFull
	case ReasonPrerequisitesNotMet:
		return appErrors.ErrPrerequisitesNotMet
	case ReasonRegistrationWindowClosed:
		return appErrors.ErrRegistrationClosed
	default:
		return appErrors.ErrInternal
	}
}

// RegistrationFacts carries everything CheckRegistration needs, fetched by
// the coordinator inside the registration transaction.
type RegistrationFacts struct {
	Now             time.Time
	Semester        *models.Semester
	Class           *models.Class
	Enrolled        int
	PrerequisiteIDs []string
	Passed          map[string]bool
}

// CheckRegistration applies the registration rules in order: semester window,
// class capacity, prerequisite completion. Registration stays open through
// the semester's end date inclusive.
func CheckRegistration(f RegistrationFacts) Reason {
	if f.Semester == nil || f.Now.After(f.Semester.EndDate) {
		return ReasonSemesterClosed
	}
	if f.Class == nil || f.Enrolled >= f.Class.MaxStudents {
		return ReasonClassFull
	}
	for _, id := range f.PrerequisiteIDs {
		if !f.Passed[id] {
			return ReasonPrerequisitesNotMet
		}
	}
	return ReasonNone
}

// CheckCancellation permits unregistering only strictly before the semester
// starts; at the exact start instant the window is already closed.
func CheckCancellation(now time.Time, semester *models.Semester) Reason {
	if semester == nil || !now.Before(semester.StartDate) {
		return ReasonRegistrationWindowClosed
	}
	return ReasonNone
}
