package booking

import (
	"fmt"
	"strings"

	"concierge/models"
	"concierge/services/classify"
)

// ValidationError lists the fields of a booking request that failed validation.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Fields, ", "), e.Reason)
}

func newValidationError(reason string, fields ...string) error {
	verr := &ValidationError{Fields: fields, Reason: reason}
	return classify.Wrap(models.CodeValidationError, verr, verr.Error())
}

// SlotUnavailableError means the requested time is taken; Alternatives suggests others.
type SlotUnavailableError struct {
	Requested    string
	Alternatives []string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s is not available", e.Requested)
}

func newSlotUnavailable(requested string, alternatives []string) error {
	serr := &SlotUnavailableError{Requested: requested, Alternatives: alternatives}
	return classify.Wrap(models.CodeTimeUnavailable, serr, serr.Error())
}

// bookingErrorType is the category-qualified name of an unexpected execution failure.
func bookingErrorType(c models.Category) string {
	return c.Title() + "BookingError"
}
