package booking

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"concierge/models"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(clockLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// envelope holds the generic fields every category needs.
type envelope struct {
	Date      string `json:"date" validate:"required,date"`
	PartySize int    `json:"partySize" validate:"required,min=1"`
}

// validateEnvelope runs the category-independent checks.
func validateEnvelope(req *models.BookingRequest) error {
	if req.Venue == nil && strings.TrimSpace(req.VenueID) == "" {
		return newValidationError("a venue is required", "venue")
	}
	if err := validate.Struct(req.Contact); err != nil {
		return fieldErrors(err, "contact.")
	}
	if err := validate.Struct(envelope{Date: req.Date, PartySize: req.PartySize}); err != nil {
		return fieldErrors(err, "")
	}
	return nil
}

// validateDetails checks that the payload matches the category and carries its required fields.
func validateDetails(req *models.BookingRequest) error {
	if isNilDetails(req.Details) {
		return newValidationError("booking details are required", "details")
	}
	if req.Details.Category() != req.Category {
		return newValidationError("details do not match category "+string(req.Category), "details")
	}
	if err := validate.Struct(req.Details); err != nil {
		return fieldErrors(err, "details.")
	}
	return nil
}

func isNilDetails(d models.BookingDetails) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func fieldErrors(err error, prefix string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, prefix+fe.Field())
		reasons = append(reasons, describe(fe))
	}
	return newValidationError(strings.Join(reasons, "; "), fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "date":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "clock":
		return fe.Field() + " must be a time in HH:MM format"
	}
	return fe.Field() + " is invalid"
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}
