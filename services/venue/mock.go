package venue

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"concierge/models"
)

// MockGenerator builds a deterministic venue catalogue for local runs and tests.
// The same seed always yields the same venues.
type MockGenerator struct {
	Seed          int64
	PerCategory   int
	Center        models.Location
	MaxRadiusMile float64
	// OnlineRatio is the share of venues that accept online bookings for their category.
	OnlineRatio float64
}

// DefaultCenter is downtown San Francisco.
var DefaultCenter = models.Location{Latitude: 37.7749, Longitude: -122.4194}

func NewMockGenerator(seed int64, perCategory int) *MockGenerator {
	return &MockGenerator{
		Seed:          seed,
		PerCategory:   perCategory,
		Center:        DefaultCenter,
		MaxRadiusMile: 5,
		OnlineRatio:   0.7,
	}
}

type mockTemplate struct {
	names []string
	tags  []string
	tx    string
}

var mockTemplates = map[models.Category]mockTemplate{
	models.CategoryDining: {
		names: []string{"Trattoria", "Bistro", "Kitchen", "Noodle Bar", "Taqueria", "Grill", "Sushi House", "Cafe"},
		tags:  []string{"italian", "french", "japanese", "mexican", "vegan", "steakhouse", "thai", "indian"},
		tx:    models.TxRestaurantReservation,
	},
	models.CategoryAccommodation: {
		names: []string{"Hotel", "Inn", "Suites", "Lodge", "Guesthouse", "Resort"},
		tags:  []string{"hotels", "boutique", "bedandbreakfast", "hostels", "resorts"},
		tx:    models.TxHotelReservation,
	},
	models.CategoryAttraction: {
		names: []string{"Museum", "Gardens", "Observatory", "Aquarium", "Gallery", "Tower"},
		tags:  []string{"museums", "landmarks", "parks", "aquariums", "galleries"},
		tx:    models.TxTicketSales,
	},
	models.CategoryTransportation: {
		names: []string{"Cabs", "Shuttle Co", "Car Service", "Transit", "Limousine"},
		tags:  []string{"taxis", "shuttles", "limos", "airportshuttles"},
		tx:    models.TxTransportBooking,
	},
	models.CategoryEntertainment: {
		names: []string{"Theater", "Comedy Club", "Music Hall", "Cinema", "Jazz Lounge"},
		tags:  []string{"theater", "comedyclubs", "musicvenues", "cinema", "jazzandblues"},
		tx:    models.TxEventTickets,
	},
}

var mockPrefixes = []string{"Golden Gate", "Mission", "Harbor", "Union", "Nob Hill", "Marina", "Presidio", "Sunset", "Castro", "Embarcadero"}

// Generate returns PerCategory venues for every booking category.
func (g *MockGenerator) Generate() []models.Venue {
	rng := rand.New(rand.NewSource(g.Seed))
	total := g.PerCategory * len(models.Categories)
	if total == 0 {
		return nil
	}

	// Distances are spread linearly from the edge of the radius towards the center.
	minRadius := 0.05
	spacing := 0.0
	if total > 1 {
		spacing = (g.MaxRadiusMile - minRadius) / float64(total-1)
	}

	venues := make([]models.Venue, 0, total)
	counter := 0
	for _, cat := range models.Categories {
		tmpl := mockTemplates[cat]
		for i := 0; i < g.PerCategory; i++ {
			radius := g.MaxRadiusMile - spacing*float64(counter)
			angle := rng.Float64() * 2 * math.Pi
			// 1 mile is roughly 0.0145 degrees of latitude.
			dLat := radius * 0.0145 * math.Sin(angle)
			dLon := radius * 0.0145 * math.Cos(angle) / math.Cos(g.Center.Latitude*math.Pi/180)
			counter++

			name := fmt.Sprintf("%s %s", mockPrefixes[rng.Intn(len(mockPrefixes))], tmpl.names[rng.Intn(len(tmpl.names))])
			tags := []string{string(cat), tmpl.tags[rng.Intn(len(tmpl.tags))]}

			var tx []string
			if rng.Float64() < g.OnlineRatio {
				tx = append(tx, tmpl.tx)
			}

			slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
			venues = append(venues, models.Venue{
				ID:           fmt.Sprintf("%s-%03d", cat, i+1),
				Name:         name,
				Rating:       math.Round((3+rng.Float64()*2)*10) / 10,
				ReviewCount:  rng.Intn(600),
				Price:        models.PriceTier(1 + rng.Intn(4)),
				Categories:   tags,
				Location:     models.Location{Latitude: g.Center.Latitude + dLat, Longitude: g.Center.Longitude + dLon},
				Transactions: tx,
				Contact: models.ContactInfo{
					Phone: fmt.Sprintf("+1415555%04d", counter),
					URL:   fmt.Sprintf("https://example.com/%s-%d", slug, counter),
				},
			})
		}
	}
	return venues
}
