// Package decision ranks candidate venues against user preferences and explains the choice.
// The engine holds only read-only configuration, so one instance may serve any number of
// concurrent callers.
package decision

import (
	"math"
	"sort"
	"strings"
	"sync"

	"concierge/models"
)

// KeywordRule nudges scores when one of Keywords appears in the last user query.
// Venues matching the rule gain Boost, the others lose it.
type KeywordRule struct {
	Name      string             `mapstructure:"name"`
	Keywords  []string           `mapstructure:"keywords"`
	Tiers     []models.PriceTier `mapstructure:"tiers"`
	MinRating float64            `mapstructure:"min_rating"`
	Boost     float64            `mapstructure:"boost"`
}

func (r KeywordRule) firstMatch(query string) (string, bool) {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(query, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

func (r KeywordRule) matches(v models.Venue) bool {
	if v.Rating < r.MinRating {
		return false
	}
	if len(r.Tiers) == 0 {
		return true
	}
	for _, t := range r.Tiers {
		if v.Price == t {
			return true
		}
	}
	return false
}

// Config tunes the engine. The zero value is not useful; start from DefaultConfig.
type Config struct {
	ContextRules         []KeywordRule `mapstructure:"context_rules"`
	ContextWeight        float64       `mapstructure:"context_weight"`
	MaxContextAdjustment float64       `mapstructure:"max_context_adjustment"`
	MaxAlternatives      int           `mapstructure:"max_alternatives"`
	// MinScore marks a selection as below threshold when its score is lower. Zero disables it.
	MinScore float64 `mapstructure:"min_score"`
}

// DefaultConfig returns the built-in keyword nudges and limits.
func DefaultConfig() Config {
	return Config{
		ContextRules: []KeywordRule{
			{
				Name:     "budget",
				Keywords: []string{"budget", "cheap", "affordable", "inexpensive"},
				Tiers:    []models.PriceTier{1, 2},
				Boost:    0.2,
			},
			{
				Name:     "upscale",
				Keywords: []string{"fancy", "upscale", "luxury", "fine dining", "special occasion"},
				Tiers:    []models.PriceTier{3, 4},
				Boost:    0.2,
			},
			{
				Name:      "top-rated",
				Keywords:  []string{"best", "top rated", "highly rated"},
				MinRating: 4.5,
				Boost:     0.1,
			},
		},
		ContextWeight:        0.10,
		MaxContextAdjustment: 0.2,
		MaxAlternatives:      3,
		MinScore:             0.55,
	}
}

// Engine scores and ranks venues.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine; missing limits fall back to the defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ContextWeight <= 0 {
		cfg.ContextWeight = def.ContextWeight
	}
	if cfg.MaxContextAdjustment <= 0 {
		cfg.MaxContextAdjustment = def.MaxContextAdjustment
	}
	if cfg.MaxAlternatives <= 0 {
		cfg.MaxAlternatives = def.MaxAlternatives
	}
	return &Engine{cfg: cfg}
}

// Ranked is a venue with its computed score and factor breakdown.
type Ranked struct {
	Venue   models.Venue
	Score   float64
	Factors []models.DecisionFactor
}

// Score computes the weighted score of a single venue. Factor weights in the
// result are renormalized so they sum to 1.
func (e *Engine) Score(v models.Venue, prefs models.UserPreferences, from *models.Location, cc *models.ConversationContext) (float64, []models.DecisionFactor) {
	factors := []models.DecisionFactor{ratingScore(v)}
	if f, ok := priceScore(v, prefs); ok {
		factors = append(factors, f)
	}
	factors = append(factors,
		distanceScore(v, from),
		categoryScore(v, prefs),
		popularityScore(v),
	)
	if f, ok := e.contextScore(v, cc); ok {
		factors = append(factors, f)
	}

	var total, weighted float64
	for _, f := range factors {
		total += f.Weight
		weighted += f.Weight * f.Score
	}
	for i := range factors {
		factors[i].Weight /= total
	}
	return weighted / total, factors
}

// Rank scores every venue and orders them best first. Equal scores keep input order.
func (e *Engine) Rank(venues []models.Venue, prefs models.UserPreferences, from *models.Location, cc *models.ConversationContext) []Ranked {
	ranked := make([]Ranked, len(venues))
	var wg sync.WaitGroup
	for i, v := range venues {
		wg.Add(1)
		go func(i int, v models.Venue) {
			defer wg.Done()
			score, factors := e.Score(v, prefs, from, cc)
			ranked[i] = Ranked{Venue: v, Score: score, Factors: factors}
		}(i, v)
	}
	wg.Wait()

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectBest picks the best venue, up to MaxAlternatives runners-up, and explains why.
func (e *Engine) SelectBest(venues []models.Venue, prefs models.UserPreferences, from *models.Location, cc *models.ConversationContext) (*models.DecisionResponse, error) {
	if len(venues) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	if len(venues) == 1 {
		return singleCandidate(venues[0]), nil
	}

	ranked := e.Rank(venues, prefs, from, cc)
	top := ranked[0]
	resp := &models.DecisionResponse{
		Selected:       top.Venue,
		Alternatives:   e.alternatives(ranked),
		Factors:        top.Factors,
		Reasoning:      explain(top.Venue, top.Factors),
		Confidence:     confidence(ranked),
		Score:          top.Score,
		BelowThreshold: e.cfg.MinScore > 0 && top.Score < e.cfg.MinScore,
	}
	return resp, nil
}

// ForceSelect always returns one of the supplied venues, even when none of them
// clears the minimum score. Confidence is pinned to the floor.
func (e *Engine) ForceSelect(venues []models.Venue, prefs models.UserPreferences, from *models.Location, cc *models.ConversationContext) (*models.DecisionResponse, error) {
	if len(venues) == 0 {
		return nil, ErrNoCandidatesAvailable
	}
	resp, err := e.SelectBest(venues, prefs, from, cc)
	if err != nil {
		return nil, err
	}
	if resp.BelowThreshold {
		resp.Confidence = minConfidence
		resp.Reasoning = "None of the options fully matches what you asked for. " + resp.Reasoning
	}
	return resp, nil
}

func (e *Engine) alternatives(ranked []Ranked) []models.Venue {
	n := len(ranked) - 1
	if n > e.cfg.MaxAlternatives {
		n = e.cfg.MaxAlternatives
	}
	alts := make([]models.Venue, 0, n)
	for _, r := range ranked[1 : n+1] {
		alts = append(alts, r.Venue)
	}
	return alts
}

const (
	minConfidence    = 0.5
	maxConfidence    = 0.95
	singleConfidence = 0.8
)

func confidence(ranked []Ranked) float64 {
	if len(ranked) < 2 {
		return singleConfidence
	}
	c := minConfidence + 2*(ranked[0].Score-ranked[1].Score)
	return math.Max(minConfidence, math.Min(maxConfidence, c))
}

func singleCandidate(v models.Venue) *models.DecisionResponse {
	f := ratingScore(v)
	f.Weight = 1
	return &models.DecisionResponse{
		Selected:     v,
		Alternatives: []models.Venue{},
		Factors:      []models.DecisionFactor{f},
		Reasoning:    v.Name + " is the only option that matched your search.",
		Confidence:   singleConfidence,
		Score:        f.Score,
	}
}
