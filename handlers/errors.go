package handlers

import (
	"net/http"

	"concierge/models"
	"concierge/services/classify"
	"concierge/utils"

	"github.com/gin-gonic/gin"
)

// statusForCode maps a taxonomy code onto the HTTP status used by the lookup endpoints.
func statusForCode(code models.ErrorCode) int {
	switch code {
	case models.CodeValidationError, models.CodeUnsupportedCategory:
		return http.StatusBadRequest
	case models.CodeBusinessNotFound:
		return http.StatusNotFound
	case models.CodeAvailabilityCheckFailed:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError classifies err and writes it as a JSON error body. A label, when
// the error has one, is reported in place of the broader code.
func writeError(c *gin.Context, err error) {
	cl := classify.Classify(err)
	code := string(cl.Code)
	if cl.Label != "" {
		code = cl.Label
	}
	utils.JSONError(c, statusForCode(cl.Code), code, cl.Message, "")
}

func badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, string(models.CodeValidationError), message, details)
}
