package decision

import (
	"fmt"
	"math"
	"strings"

	"concierge/models"
)

// Base factor weights. Context is an additional weight on top of these.
const (
	WeightRating     = 0.30
	WeightPrice      = 0.25
	WeightDistance   = 0.20
	WeightCategory   = 0.15
	WeightPopularity = 0.10
)

const (
	neutralScore      = 0.8
	unknownPriceScore = 0.5
)

func ratingScore(v models.Venue) models.DecisionFactor {
	r := math.Max(0, math.Min(5, v.Rating))
	return models.DecisionFactor{
		Name:        models.FactorRating,
		Weight:      WeightRating,
		Score:       r / 5,
		Description: fmt.Sprintf("Rated %.1f out of 5", r),
	}
}

// priceScore returns ok=false when the user expressed no price preference.
func priceScore(v models.Venue, prefs models.UserPreferences) (models.DecisionFactor, bool) {
	if !prefs.PriceTier.Valid() {
		return models.DecisionFactor{}, false
	}
	f := models.DecisionFactor{Name: models.FactorPrice, Weight: WeightPrice}
	if !v.Price.Valid() {
		f.Score = unknownPriceScore
		f.Description = "Price level unknown"
		return f, true
	}
	diff := math.Abs(float64(prefs.PriceTier - v.Price))
	f.Score = math.Max(0, 1-0.3*diff)
	if diff == 0 {
		f.Description = fmt.Sprintf("%s matches your %s budget", v.Price, prefs.PriceTier)
	} else {
		f.Description = fmt.Sprintf("%s against your %s budget", v.Price, prefs.PriceTier)
	}
	return f, true
}

// distanceMiles prefers the provider-supplied distance and falls back to the
// great-circle distance from the requester.
func distanceMiles(v models.Venue, from *models.Location) (float64, bool) {
	if v.Distance != nil && *v.Distance >= 0 {
		return *v.Distance, true
	}
	if from == nil || from.IsZero() || v.Location.IsZero() {
		return 0, false
	}
	return from.MilesTo(v.Location), true
}

func distanceScore(v models.Venue, from *models.Location) models.DecisionFactor {
	f := models.DecisionFactor{Name: models.FactorDistance, Weight: WeightDistance}
	d, ok := distanceMiles(v, from)
	if !ok {
		f.Score = neutralScore
		f.Description = "Distance unknown"
		return f
	}
	switch {
	case d <= 0.5:
		f.Score = 1.0
	case d <= 1:
		f.Score = 0.9
	case d <= 2:
		f.Score = 0.7
	case d <= 5:
		f.Score = 0.5
	default:
		f.Score = 0.3
	}
	f.Description = fmt.Sprintf("%.1f miles away", d)
	return f
}

func categoryScore(v models.Venue, prefs models.UserPreferences) models.DecisionFactor {
	f := models.DecisionFactor{Name: models.FactorCategory, Weight: WeightCategory}
	var wanted []string
	for _, c := range prefs.Categories {
		if c = strings.TrimSpace(c); c != "" {
			wanted = append(wanted, c)
		}
	}
	if len(wanted) == 0 {
		f.Score = neutralScore
		f.Description = "No category preference"
		return f
	}
	matched := 0
	for _, c := range wanted {
		if v.HasCategory(c) {
			matched++
		}
	}
	f.Score = float64(matched) / float64(len(wanted))
	f.Description = fmt.Sprintf("Matches %d of %d preferred categories", matched, len(wanted))
	return f
}

func popularityScore(v models.Venue) models.DecisionFactor {
	f := models.DecisionFactor{
		Name:        models.FactorPopularity,
		Weight:      WeightPopularity,
		Description: fmt.Sprintf("%d reviews", v.ReviewCount),
	}
	switch n := v.ReviewCount; {
	case n <= 10:
		f.Score = 0.3
	case n <= 50:
		f.Score = 0.6
	case n <= 200:
		f.Score = 0.8
	default:
		f.Score = 1.0
	}
	return f
}

// contextScore returns ok=false when no rule fired for the last query.
func (e *Engine) contextScore(v models.Venue, cc *models.ConversationContext) (models.DecisionFactor, bool) {
	if cc == nil || strings.TrimSpace(cc.LastQuery) == "" {
		return models.DecisionFactor{}, false
	}
	query := strings.ToLower(cc.LastQuery)
	var adj float64
	var fired []string
	for _, rule := range e.cfg.ContextRules {
		kw, ok := rule.firstMatch(query)
		if !ok {
			continue
		}
		fired = append(fired, kw)
		if rule.matches(v) {
			adj += rule.Boost
		} else {
			adj -= rule.Boost
		}
	}
	if len(fired) == 0 {
		return models.DecisionFactor{}, false
	}
	limit := e.cfg.MaxContextAdjustment
	adj = math.Max(-limit, math.Min(limit, adj))
	return models.DecisionFactor{
		Name:        models.FactorContext,
		Weight:      e.cfg.ContextWeight,
		Score:       math.Max(0, math.Min(1, 0.5+adj)),
		Description: fmt.Sprintf("Adjusted for %q", strings.Join(fired, ", ")),
	}, true
}
