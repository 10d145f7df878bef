package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequestDecodesDetailsByCategory(t *testing.T) {
	tests := []struct {
		name string
		body string
		want BookingDetails
	}{
		{"dining", `{"category":"dining","details":{"preferredTime":"19:00","seating":"patio"}}`,
			&DiningDetails{PreferredTime: "19:00", Seating: "patio"}},
		{"accommodation", `{"category":"Accommodation","details":{"checkIn":"2030-05-01","checkOut":"2030-05-03","rooms":1}}`,
			&AccommodationDetails{CheckIn: "2030-05-01", CheckOut: "2030-05-03", Rooms: 1}},
		{"attraction", `{"category":"attraction","details":{"visitTime":"10:00","ticketType":"adult","ticketCount":2}}`,
			&AttractionDetails{VisitTime: "10:00", TicketType: "adult", TicketCount: 2}},
		{"transportation", `{"category":"transportation","details":{"departureTime":"08:00","arrivalTime":"08:30","mode":"taxi"}}`,
			&TransportationDetails{DepartureTime: "08:00", ArrivalTime: "08:30", Mode: "taxi"}},
		{"entertainment", `{"category":" entertainment ","details":{"preferredTime":"21:00"}}`,
			&EntertainmentDetails{PreferredTime: "21:00"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req BookingRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.want, req.Details)
			assert.Equal(t, tc.want.Category(), req.Category)
		})
	}
}

func TestBookingRequestUnknownCategoryKeepsNilDetails(t *testing.T) {
	var req BookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"category":"spa","venueId":"v1","details":{"x":1}}`), &req))
	assert.Equal(t, Category("spa"), req.Category)
	assert.Equal(t, "v1", req.VenueID)
	assert.Nil(t, req.Details)
}

func TestBookingRequestRejectsMistypedDetails(t *testing.T) {
	var req BookingRequest
	err := json.Unmarshal([]byte(`{"category":"dining","details":{"preferredTime":7}}`), &req)
	assert.ErrorContains(t, err, "invalid dining details")
}

func TestBookingRequestVenuePriceNotation(t *testing.T) {
	var req BookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"category":"dining","venue":{"id":"v1","price":"$$$"}}`), &req))
	require.NotNil(t, req.Venue)
	assert.Equal(t, PriceTier(3), req.Venue.Price)
	assert.Nil(t, req.Details)
}

func TestParsePriceTier(t *testing.T) {
	valid := map[string]PriceTier{"": PriceUnknown, "$": 1, "$$$$": 4, " 2 ": 2}
	for in, want := range valid {
		got, err := ParsePriceTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"$$$$$", "0", "9", "cheap"} {
		_, err := ParsePriceTier(in)
		assert.Error(t, err, in)
	}

	var p PriceTier
	assert.Error(t, json.Unmarshal([]byte(`7`), &p))
	assert.Equal(t, "$$", PriceTier(2).String())
	assert.Empty(t, PriceUnknown.String())
}

func TestParseCategoryAndTitle(t *testing.T) {
	c, ok := ParseCategory(" Dining")
	assert.True(t, ok)
	assert.Equal(t, CategoryDining, c)
	assert.Equal(t, "Dining", c.Title())

	_, ok = ParseCategory("spa")
	assert.False(t, ok)
}

func TestMilesTo(t *testing.T) {
	sf := Location{Latitude: 37.7749, Longitude: -122.4194}
	la := Location{Latitude: 34.0522, Longitude: -118.2437}
	assert.InDelta(t, 347, sf.MilesTo(la), 3)
	assert.Zero(t, sf.MilesTo(sf))
}
