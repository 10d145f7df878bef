package booking

import (
	"math"
	"strings"

	"concierge/models"
)

// Price tables indexed by tier-1. Unknown tiers price as "$$".
var (
	nightlyRate      = [4]float64{80, 140, 220, 380}
	attractionTicket = [4]float64{15, 25, 40, 65}
	eventTicket      = [4]float64{20, 45, 80, 150}
	diningCover      = [4]float64{15, 30, 60, 110}
)

// transportFare is the price per vehicle (flat) or per passenger.
var transportFare = map[string]struct {
	amount       float64
	perPassenger bool
}{
	"taxi":      {25, false},
	"rideshare": {20, false},
	"shuttle":   {15, true},
	"train":     {35, true},
	"bus":       {8, true},
}

func tierIndex(p models.PriceTier) int {
	if !p.Valid() {
		return 1
	}
	return int(p) - 1
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AccommodationCost is nightly rate × nights × rooms.
func AccommodationCost(tier models.PriceTier, nights, rooms int) float64 {
	return roundCents(nightlyRate[tierIndex(tier)] * float64(nights) * float64(rooms))
}

// AttractionCost is per-ticket price × count.
func AttractionCost(tier models.PriceTier, tickets int) float64 {
	return roundCents(attractionTicket[tierIndex(tier)] * float64(tickets))
}

// EntertainmentCost is per-ticket price × count.
func EntertainmentCost(tier models.PriceTier, tickets int) float64 {
	return roundCents(eventTicket[tierIndex(tier)] * float64(tickets))
}

// DiningCost estimates the bill for the whole party.
func DiningCost(tier models.PriceTier, partySize int) float64 {
	return roundCents(diningCover[tierIndex(tier)] * float64(partySize))
}

// TransportationCost prices a ride by mode. Unknown modes price as a taxi.
func TransportationCost(mode string, passengers int) float64 {
	fare, ok := transportFare[strings.ToLower(strings.TrimSpace(mode))]
	if !ok {
		fare = transportFare["taxi"]
	}
	if fare.perPassenger {
		return roundCents(fare.amount * float64(passengers))
	}
	return roundCents(fare.amount)
}
