package handlers

import (
	"encoding/json"
	"net/http"

	"concierge/models"
	"concierge/services/booking"
	"concierge/services/classify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBatchSize = 10

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Orchestrator booking.Orchestrator
	Logger       *zap.Logger
}

func NewBookingHandler(orchestrator booking.Orchestrator, logger *zap.Logger) *BookingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingHandler{Orchestrator: orchestrator, Logger: logger}
}

// Book handles POST /api/book. Failed bookings are still 200 responses;
// only an unexpected orchestration error is a 500.
func (h *BookingHandler) Book(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		badRequest(c, "invalid booking request", err)
		return
	}

	// Well-formed JSON with mistyped fields is a failed booking, not a bad request.
	var req models.BookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var head struct {
			Category string `json:"category"`
			VenueID  string `json:"venueId"`
		}
		_ = json.Unmarshal(body, &head)
		category, _ := models.ParseCategory(head.Category)
		c.JSON(http.StatusOK, booking.RejectedResult(
			models.BookingRequest{Category: category, VenueID: head.VenueID},
			classify.Wrap(models.CodeValidationError, err, "booking request has a field of the wrong type"),
		))
		return
	}

	result := h.Orchestrator.CoordinateBooking(c.Request.Context(), req)
	status := http.StatusOK
	if result.Code == models.CodeOrchestrationError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

// BookBatch handles POST /api/book/batch.
func (h *BookingHandler) BookBatch(c *gin.Context) {
	var req models.MultiBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid batch booking request", err)
		return
	}
	if len(req.Requests) == 0 {
		badRequest(c, "at least one booking request is required", nil)
		return
	}
	if len(req.Requests) > maxBatchSize {
		badRequest(c, "too many booking requests in one batch", nil)
		return
	}

	result := h.Orchestrator.CoordinateMultiServiceBooking(c.Request.Context(), req.Requests)
	h.Logger.Info("batch booking finished",
		zap.String("overallStatus", result.OverallStatus),
		zap.Int("confirmed", result.Confirmed),
		zap.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
