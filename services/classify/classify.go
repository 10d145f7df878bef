// Package classify maps raw failure conditions onto the closed error taxonomy
// used by both the decision engine and the booking orchestrator.
package classify

import (
	"context"
	"errors"
	"fmt"
	"net"

	"concierge/models"

	"github.com/go-playground/validator/v10"
)

// Classification is the caller-facing view of a failure.
type Classification struct {
	Code             models.ErrorCode `json:"code"`
	Label            string           `json:"label,omitempty"`
	Retryable        bool             `json:"retryable"`
	SuggestedActions []string         `json:"suggestedActions"`
	Message          string           `json:"message,omitempty"`
}

// Failure is an error that already knows its taxonomy code.
type Failure struct {
	Code    models.ErrorCode
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches any other Failure carrying the same code.
func (f *Failure) Is(target error) bool {
	var t *Failure
	if errors.As(target, &t) {
		return t.Code == f.Code
	}
	return false
}

// Coded is implemented by errors from other packages that know their place in
// the taxonomy without being a Failure.
type Coded interface {
	error
	TaxonomyCode() models.ErrorCode
}

// Labeled errors carry a name more specific than their taxonomy code.
type Labeled interface {
	error
	Label() string
}

// New returns a Failure with the given code.
func New(code models.ErrorCode, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Wrap attaches a code to an underlying error.
func Wrap(code models.ErrorCode, err error, message string) *Failure {
	return &Failure{Code: code, Message: message, Err: err}
}

type policy struct {
	retryable bool
	actions   []string
}

var policies = map[models.ErrorCode]policy{
	models.CodeValidationError: {
		actions: []string{"Review the booking details and resubmit"},
	},
	models.CodeBusinessNotFound: {
		actions: []string{"Choose a different venue", "Refresh the venue list"},
	},
	models.CodeUnsupportedCategory: {
		actions: []string{"Use one of: dining, accommodation, attraction, transportation, entertainment"},
	},
	models.CodeNoOnlineBookingSupport: {
		actions: []string{"Call the venue to book directly", "Book through the venue's website", "Choose a venue that supports online booking"},
	},
	models.CodeTimeUnavailable: {
		retryable: true,
		actions:   []string{"Pick one of the suggested times", "Try a different date"},
	},
	models.CodeBookingFailed: {
		retryable: true,
		actions:   []string{"Try again in a few minutes", "Choose one of the alternative venues", "Contact the venue directly"},
	},
	models.CodeAvailabilityCheckFailed: {
		retryable: true,
		actions:   []string{"Try again in a few minutes"},
	},
	models.CodeOrchestrationError: {
		retryable: true,
		actions:   []string{"Try again", "Contact support if the problem persists"},
	},
}

// ForCode returns the classification of a known code. Unknown codes are
// treated as orchestration errors.
func ForCode(code models.ErrorCode) Classification {
	p, ok := policies[code]
	if !ok {
		code = models.CodeOrchestrationError
		p = policies[code]
	}
	return Classification{
		Code:             code,
		Retryable:        p.retryable,
		SuggestedActions: append([]string(nil), p.actions...),
	}
}

// Retryable reports whether failures with this code may be retried by the caller.
func Retryable(code models.ErrorCode) bool {
	return ForCode(code).Retryable
}

// Classify inspects err and returns its place in the taxonomy.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}
	c := ForCode(codeOf(err))
	c.Message = err.Error()
	var f *Failure
	if errors.As(err, &f) && f.Message != "" {
		c.Message = f.Message
	}
	var l Labeled
	if errors.As(err, &l) {
		c.Label = l.Label()
	}
	return c
}

func codeOf(err error) models.ErrorCode {
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	var coded Coded
	if errors.As(err, &coded) {
		return coded.TaxonomyCode()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return models.CodeValidationError
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.CodeAvailabilityCheckFailed
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return models.CodeAvailabilityCheckFailed
	}
	return models.CodeOrchestrationError
}
