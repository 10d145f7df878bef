package models

// UserPreferences is supplied by the caller with every decision request.
type UserPreferences struct {
	PriceTier           PriceTier `json:"priceTier,omitempty"`
	Categories          []string  `json:"categories,omitempty"` // cuisines or venue kinds, e.g. ["italian", "sushi"]
	DietaryRestrictions []string  `json:"dietaryRestrictions,omitempty"`
	PartySize           int       `json:"partySize,omitempty"`
}

// Decision stages tracked in a conversation.
const (
	StageBrowsing  = "browsing"
	StageComparing = "comparing"
	StageDecided   = "decided"
)

// ConversationContext carries what the user last said; it only nudges scoring.
type ConversationContext struct {
	LastQuery       string `json:"lastQuery,omitempty"`
	Stage           string `json:"stage,omitempty"`
	SelectedVenueID string `json:"selectedVenueId,omitempty"`
}

// Decision factor names.
const (
	FactorRating     = "rating"
	FactorPrice      = "price"
	FactorDistance   = "distance"
	FactorCategory   = "category"
	FactorPopularity = "popularity"
	FactorContext    = "context"
)

// DecisionFactor is one weighted component of a venue's score.
type DecisionFactor struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"` // renormalized, factors of one venue sum to 1
	Score       float64 `json:"score"`  // normalized 0-1
	Description string  `json:"description"`
}

// DecisionResponse is the outcome of choosing among candidate venues.
type DecisionResponse struct {
	Selected       Venue            `json:"selected"`
	Alternatives   []Venue          `json:"alternatives"`
	Factors        []DecisionFactor `json:"factors"`
	Reasoning      string           `json:"reasoning"`
	Confidence     float64          `json:"confidence"`
	Score          float64          `json:"score"`
	BelowThreshold bool             `json:"belowThreshold,omitempty"`
}

// DecisionRequest is the body of POST /api/decide.
type DecisionRequest struct {
	Venues      []Venue              `json:"venues"`
	Preferences UserPreferences      `json:"preferences"`
	Location    *Location            `json:"location,omitempty"`
	Context     *ConversationContext `json:"context,omitempty"`
	SessionID   string               `json:"sessionId,omitempty"`
	Force       bool                 `json:"force,omitempty"`
}
