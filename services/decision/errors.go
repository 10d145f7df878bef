package decision

import (
	"fmt"

	"concierge/models"
)

// Error is returned when the engine cannot make a decision at all.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TaxonomyCode places every decision failure under ValidationError: the
// candidate list itself is unusable, so retrying it cannot help.
func (e *Error) TaxonomyCode() models.ErrorCode { return models.CodeValidationError }

// Label is the more specific name reported to callers, e.g. "EmptyCandidateSet".
func (e *Error) Label() string { return e.Code }

var (
	// ErrEmptyCandidateSet is returned by SelectBest when no venues were supplied.
	ErrEmptyCandidateSet = &Error{
		Code:    "EmptyCandidateSet",
		Message: "at least one candidate venue is required",
	}
	// ErrNoCandidatesAvailable is returned by ForceSelect when no venues were supplied.
	ErrNoCandidatesAvailable = &Error{
		Code:    "NoCandidatesAvailable",
		Message: "no venues available to choose from",
	}
)
