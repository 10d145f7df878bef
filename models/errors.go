package models

// ErrorCode is the closed set of failure codes shared by decision and booking.
type ErrorCode string

const (
	CodeValidationError         ErrorCode = "ValidationError"
	CodeBusinessNotFound        ErrorCode = "BusinessNotFound"
	CodeUnsupportedCategory     ErrorCode = "UnsupportedCategory"
	CodeNoOnlineBookingSupport  ErrorCode = "NoOnlineBookingSupport"
	CodeTimeUnavailable         ErrorCode = "TimeUnavailable"
	CodeBookingFailed           ErrorCode = "BookingFailed"
	CodeAvailabilityCheckFailed ErrorCode = "AvailabilityCheckFailed"
	CodeOrchestrationError      ErrorCode = "OrchestrationError"
)

// ErrorCodes lists every code in the taxonomy.
var ErrorCodes = []ErrorCode{
	CodeValidationError,
	CodeBusinessNotFound,
	CodeUnsupportedCategory,
	CodeNoOnlineBookingSupport,
	CodeTimeUnavailable,
	CodeBookingFailed,
	CodeAvailabilityCheckFailed,
	CodeOrchestrationError,
}
