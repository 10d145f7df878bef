package handlers

import (
	"context"
	"net/http"
	"time"

	"concierge/metrics"
	"concierge/models"
	"concierge/services/conversation"
	"concierge/services/decision"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DecisionHandler serves POST /api/decide.
type DecisionHandler struct {
	Engine *decision.Engine
	Store  conversation.Store // optional
	Logger *zap.Logger
}

func NewDecisionHandler(engine *decision.Engine, store conversation.Store, logger *zap.Logger) *DecisionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionHandler{Engine: engine, Store: store, Logger: logger}
}

// Decide ranks the supplied venues and returns the selection with its reasoning.
func (h *DecisionHandler) Decide(c *gin.Context) {
	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid decision request", err)
		return
	}

	ctx := c.Request.Context()
	cc := req.Context
	if cc == nil && req.SessionID != "" && h.Store != nil {
		stored, err := h.Store.Get(ctx, req.SessionID)
		if err != nil {
			h.Logger.Warn("could not load conversation context", zap.String("sessionID", req.SessionID), zap.Error(err))
		} else {
			cc = stored
		}
	}

	var (
		resp *models.DecisionResponse
		err  error
	)
	if req.Force {
		resp, err = h.Engine.ForceSelect(req.Venues, req.Preferences, req.Location, cc)
	} else {
		resp, err = h.Engine.SelectBest(req.Venues, req.Preferences, req.Location, cc)
	}
	if err != nil {
		metrics.ObserveDecision("rejected", 0)
		writeError(c, err)
		return
	}

	outcome := "selected"
	if resp.BelowThreshold {
		outcome = "below_threshold"
	}
	metrics.ObserveDecision(outcome, resp.Confidence)
	h.Logger.Info("decision made",
		zap.String("venueID", resp.Selected.ID),
		zap.Int("candidates", len(req.Venues)),
		zap.Float64("confidence", resp.Confidence))

	h.remember(ctx, req.SessionID, cc, resp.Selected.ID)
	c.JSON(http.StatusOK, resp)
}

// remember records the decision against the session. Failures only get logged.
func (h *DecisionHandler) remember(ctx context.Context, sessionID string, cc *models.ConversationContext, venueID string) {
	if sessionID == "" || h.Store == nil {
		return
	}
	next := models.ConversationContext{}
	if cc != nil {
		next = *cc
	}
	next.Stage = models.StageDecided
	next.SelectedVenueID = venueID

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := h.Store.Set(ctx, sessionID, &next); err != nil {
		h.Logger.Warn("could not save conversation context", zap.String("sessionID", sessionID), zap.Error(err))
	}
}
