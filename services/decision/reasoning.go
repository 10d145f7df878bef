package decision

import (
	"fmt"
	"sort"
	"strings"

	"concierge/models"
)

const clauseThreshold = 0.7

func clause(f models.DecisionFactor, v models.Venue) string {
	switch f.Name {
	case models.FactorRating:
		return fmt.Sprintf("has excellent ratings (%.1f/5)", v.Rating)
	case models.FactorPrice:
		return "matches your budget"
	case models.FactorDistance:
		return "is conveniently close"
	case models.FactorCategory:
		return "matches what you're looking for"
	case models.FactorPopularity:
		return fmt.Sprintf("is popular with %d reviews", v.ReviewCount)
	case models.FactorContext:
		return "fits what you asked for"
	}
	return ""
}

// explain builds the reasoning text from the three strongest contributions.
func explain(v models.Venue, factors []models.DecisionFactor) string {
	top := append([]models.DecisionFactor(nil), factors...)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score*top[i].Weight > top[j].Score*top[j].Weight
	})
	if len(top) > 3 {
		top = top[:3]
	}

	var clauses []string
	for _, f := range top {
		if f.Score > clauseThreshold {
			if c := clause(f, v); c != "" {
				clauses = append(clauses, c)
			}
		}
	}
	if len(clauses) == 0 {
		return v.Name + " offers the best overall balance of your preferences."
	}
	return fmt.Sprintf("I recommend %s because it %s.", v.Name, joinClauses(clauses))
}

func joinClauses(c []string) string {
	switch len(c) {
	case 1:
		return c[0]
	case 2:
		return c[0] + " and " + c[1]
	}
	return strings.Join(c[:len(c)-1], ", ") + " and " + c[len(c)-1]
}
