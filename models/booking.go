package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the service category tag of a booking request.
type Category string

const (
	CategoryDining         Category = "dining"
	CategoryAccommodation  Category = "accommodation"
	CategoryAttraction     Category = "attraction"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
)

// Categories lists every supported category in a stable order.
var Categories = []Category{
	CategoryDining,
	CategoryAccommodation,
	CategoryAttraction,
	CategoryTransportation,
	CategoryEntertainment,
}

// ParseCategory normalizes a category tag. Unknown tags are returned as-is with ok=false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return c, false
}

// Title is the capitalized category name, e.g. "Dining".
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// BookingStatus of a successful booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusFailed    BookingStatus = "failed"
)

// BookingDetails is the category-specific payload of a booking request.
// Exactly one implementation exists per category.
type BookingDetails interface {
	Category() Category
}

// DiningDetails describes a table reservation.
type DiningDetails struct {
	PreferredTime string `json:"preferredTime" validate:"required,clock"`
	Seating       string `json:"seating,omitempty"`
}

func (DiningDetails) Category() Category { return CategoryDining }

// AccommodationDetails describes a hotel stay.
type AccommodationDetails struct {
	CheckIn  string `json:"checkIn" validate:"required,date"`
	CheckOut string `json:"checkOut" validate:"required,date"`
	Rooms    int    `json:"rooms" validate:"required,min=1"`
	RoomType string `json:"roomType,omitempty"`
}

func (AccommodationDetails) Category() Category { return CategoryAccommodation }

// AttractionDetails describes admission to an attraction.
type AttractionDetails struct {
	VisitTime   string `json:"visitTime" validate:"required,clock"`
	TicketType  string `json:"ticketType" validate:"required"`
	TicketCount int    `json:"ticketCount" validate:"required,min=1"`
}

func (AttractionDetails) Category() Category { return CategoryAttraction }

// TransportationDetails describes a ride or transfer.
type TransportationDetails struct {
	DepartureTime string `json:"departureTime" validate:"required,clock"`
	ArrivalTime   string `json:"arrivalTime" validate:"required,clock"`
	Mode          string `json:"mode" validate:"required"`
	Pickup        string `json:"pickup,omitempty"`
	Dropoff       string `json:"dropoff,omitempty"`
}

func (TransportationDetails) Category() Category { return CategoryTransportation }

// EntertainmentDetails describes tickets for a show or event.
type EntertainmentDetails struct {
	PreferredTime string `json:"preferredTime" validate:"required,clock"`
	TicketCount   int    `json:"ticketCount,omitempty" validate:"omitempty,min=1"`
	Section       string `json:"section,omitempty"`
}

func (EntertainmentDetails) Category() Category { return CategoryEntertainment }

// NewDetails returns an empty payload for the category, or nil when the category is unknown.
func NewDetails(c Category) BookingDetails {
	switch c {
	case CategoryDining:
		return &DiningDetails{}
	case CategoryAccommodation:
		return &AccommodationDetails{}
	case CategoryAttraction:
		return &AttractionDetails{}
	case CategoryTransportation:
		return &TransportationDetails{}
	case CategoryEntertainment:
		return &EntertainmentDetails{}
	}
	return nil
}

// ContactDetails identifies who the booking is for.
type ContactDetails struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// BookingRequest is the category-tagged booking envelope.
type BookingRequest struct {
	Category        Category       `json:"category"`
	Venue           *Venue         `json:"venue,omitempty"`
	VenueID         string         `json:"venueId,omitempty"`
	Contact         ContactDetails `json:"contact"`
	Date            string         `json:"date"`
	PartySize       int            `json:"partySize"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
	Details         BookingDetails `json:"details,omitempty"`
}

// UnmarshalJSON decodes "details" into the payload type selected by "category".
// Unknown categories keep a nil Details so the orchestrator can reject them.
func (r *BookingRequest) UnmarshalJSON(data []byte) error {
	type envelope BookingRequest
	var raw struct {
		envelope
		Details json.RawMessage `json:"details,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = BookingRequest(raw.envelope)
	r.Details = nil

	c, known := ParseCategory(string(r.Category))
	r.Category = c
	if !known || len(raw.Details) == 0 || string(raw.Details) == "null" {
		return nil
	}
	details := NewDetails(c)
	if err := json.Unmarshal(raw.Details, details); err != nil {
		return fmt.Errorf("invalid %s details: %w", c, err)
	}
	r.Details = details
	return nil
}

// ManualBooking tells the user how to book directly with the venue.
type ManualBooking struct {
	Phone        string `json:"phone,omitempty"`
	URL          string `json:"url,omitempty"`
	DisplayPhone string `json:"displayPhone,omitempty"`
	Instructions string `json:"instructions"`
}

// BookingResult is always returned from a booking attempt, successful or not.
type BookingResult struct {
	Success        bool           `json:"success"`
	ConfirmationID string         `json:"confirmationId,omitempty"`
	VenueID        string         `json:"venueId,omitempty"`
	VenueName      string         `json:"venueName,omitempty"`
	Category       Category       `json:"category"`
	Date           string         `json:"date,omitempty"`
	PartySize      int            `json:"partySize,omitempty"`
	Details        BookingDetails `json:"details,omitempty"`
	EstimatedCost  float64        `json:"estimatedCost,omitempty"`
	Status         BookingStatus  `json:"status"`

	Code              ErrorCode      `json:"code,omitempty"`
	ErrorType         string         `json:"errorType,omitempty"`
	Message           string         `json:"message,omitempty"`
	Retryable         bool           `json:"retryable"`
	SuggestedActions  []string       `json:"suggestedActions,omitempty"`
	AlternativeVenues []Venue        `json:"alternativeVenues,omitempty"`
	AlternativeTimes  []string       `json:"alternativeTimes,omitempty"`
	ManualBooking     *ManualBooking `json:"manualBooking,omitempty"`
}

// Overall statuses of a multi-venue booking.
const (
	OverallAllConfirmed     = "all_confirmed"
	OverallPartialConfirmed = "partial_confirmed"
	OverallAllFailed        = "all_failed"
)

// MultiBookingResult aggregates several bookings made in one request.
type MultiBookingResult struct {
	OverallStatus string          `json:"overallStatus"`
	Results       []BookingResult `json:"results"`
	TotalCost     float64         `json:"totalCost"`
	Confirmed     int             `json:"confirmed"`
	Failed        int             `json:"failed"`
}

// MultiBookingRequest is the body of POST /api/book/batch.
type MultiBookingRequest struct {
	Requests []BookingRequest `json:"requests"`
}

// Availability is the answer to an availability probe.
type Availability struct {
	Available    bool     `json:"available"`
	VenueID      string   `json:"venueId,omitempty"`
	Category     Category `json:"category"`
	Date         string   `json:"date,omitempty"`
	Time         string   `json:"time,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}
