package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Transaction types a venue may declare support for.
const (
	TxRestaurantReservation = "restaurant_reservation"
	TxHotelReservation      = "hotel_reservation"
	TxTicketSales           = "ticket_sales"
	TxEventTickets          = "event_tickets"
	TxTransportBooking      = "transport_booking"
)

// PriceTier is the ordinal price level of a venue, 1 ("$") through 4 ("$$$$").
// Zero means unknown or not specified.
type PriceTier int

const (
	PriceUnknown PriceTier = 0
	PriceMin     PriceTier = 1
	PriceMax     PriceTier = 4
)

// Valid reports whether the tier lies on the 1-4 scale.
func (p PriceTier) Valid() bool {
	return p >= PriceMin && p <= PriceMax
}

func (p PriceTier) String() string {
	if !p.Valid() {
		return ""
	}
	return strings.Repeat("$", int(p))
}

// UnmarshalJSON accepts either the ordinal (2) or the dollar notation ("$$").
func (p *PriceTier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PriceUnknown
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n != 0 && !PriceTier(n).Valid() {
			return fmt.Errorf("price tier %d out of range 1-4", n)
		}
		*p = PriceTier(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("price tier must be a number or a \"$\" string: %w", err)
	}
	tier, err := ParsePriceTier(s)
	if err != nil {
		return err
	}
	*p = tier
	return nil
}

// ParsePriceTier converts "$".."$$$$" or "1".."4" into a PriceTier. Empty input is PriceUnknown.
func ParsePriceTier(s string) (PriceTier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceUnknown, nil
	}
	if strings.Trim(s, "$") == "" {
		tier := PriceTier(len(s))
		if !tier.Valid() {
			return PriceUnknown, fmt.Errorf("price tier %q out of range", s)
		}
		return tier, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || !PriceTier(n).Valid() {
		return PriceUnknown, fmt.Errorf("invalid price tier %q", s)
	}
	return PriceTier(n), nil
}

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// IsZero reports whether no coordinate was supplied.
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// MilesTo is the great-circle (haversine) distance to another point.
func (l Location) MilesTo(o Location) float64 {
	const earthRadiusMiles = 3958.8
	dLat := (o.Latitude - l.Latitude) * (math.Pi / 180)
	dLon := (o.Longitude - l.Longitude) * (math.Pi / 180)
	lat1 := l.Latitude * (math.Pi / 180)
	lat2 := o.Latitude * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// ContactInfo is how a person reaches the venue directly.
type ContactInfo struct {
	Phone string `bson:"phone" json:"phone,omitempty"`
	URL   string `bson:"url" json:"url,omitempty"`
}

// Venue is the read-only snapshot of a business supplied by the venue provider.
type Venue struct {
	ID           string      `bson:"id" json:"id"`
	Name         string      `bson:"name" json:"name"`
	Rating       float64     `bson:"rating" json:"rating"`           // 0-5
	ReviewCount  int         `bson:"reviewCount" json:"reviewCount"` // number of public reviews
	Price        PriceTier   `bson:"price" json:"price"`
	Categories   []string    `bson:"categories" json:"categories"`
	Distance     *float64    `bson:"distance,omitempty" json:"distance,omitempty"` // miles from the requester
	Location     Location    `bson:"location" json:"location"`
	Transactions []string    `bson:"transactions" json:"transactions"`
	Contact      ContactInfo `bson:"contact" json:"contact"`
}

// Supports reports whether the venue declares the given transaction type.
func (v Venue) Supports(transaction string) bool {
	for _, t := range v.Transactions {
		if strings.EqualFold(t, transaction) {
			return true
		}
	}
	return false
}

// HasCategory reports whether any of the venue's category tags contains tag (case-insensitive).
func (v Venue) HasCategory(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, c := range v.Categories {
		if strings.Contains(strings.ToLower(c), tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers holding the copy cannot affect the original.
func (v Venue) Clone() Venue {
	out := v
	out.Categories = append([]string(nil), v.Categories...)
	out.Transactions = append([]string(nil), v.Transactions...)
	if v.Distance != nil {
		d := *v.Distance
		out.Distance = &d
	}
	return out
}

// VenueQuery narrows a venue provider search.
type VenueQuery struct {
	Category string    `json:"category,omitempty"`
	Text     string    `json:"q,omitempty"`
	Near     *Location `json:"near,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}
