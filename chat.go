package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/Akachukwu893331/BMI-Calculator/internal/gateway"
	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// chat handles POST /api/chat. Body: {"history": [{role, parts:[{text}]}],
// "context": Snapshot?}. Returns {"text": reply}.
func (h *Handler) chat(c *gin.Context) {
	var req gateway.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	h.reply(c, req.History, req.Context)
}

// chatWithSnapshot handles POST /api/me/chat. Same as chat, but falls back to
// the user's latest stored snapshot when the request carries no context.
func (h *Handler) chatWithSnapshot(c *gin.Context) {
	var req gateway.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	snap := contextSnapshot(req.Context, func() (snapshotRow, error) {
		return h.latestSnapshot(c, c.GetInt("user_id"))
	})
	h.reply(c, req.History, snap)
}

// contextSnapshot returns sent when the client supplied one, otherwise the
// stored snapshot from latest. No stored snapshot means chat without context.
func contextSnapshot(sent *health.Snapshot, latest func() (snapshotRow, error)) *health.Snapshot {
	if sent != nil {
		return sent
	}
	row, err := latest()
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[chat] failed to load latest snapshot: %v", err)
		}
		return nil
	}
	return &row.Data
}

// reply converts the wire history, asks the gateway and writes the response.
func (h *Handler) reply(c *gin.Context, history []gateway.WireTurn, snap *health.Snapshot) {
	if len(history) == 0 {
		apiError(c, http.StatusBadRequest, gateway.ErrEmptyHistory.Error())
		return
	}
	turns, err := gateway.FromWire(history)
	if err != nil {
		log.Printf("[chat] %v", err)
		apiError(c, http.StatusBadRequest, "invalid role")
		return
	}
	if h.gateway == nil {
		apiError(c, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	text, err := h.gateway.Reply(c.Request.Context(), turns, snap)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrEmptyHistory):
			apiError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gateway.ErrRateLimited):
			apiError(c, http.StatusTooManyRequests, err.Error())
		default:
			log.Printf("[chat] provider error: %v", err)
			apiError(c, http.StatusBadGateway, "ai request failed")
		}
		return
	}

	c.JSON(http.StatusOK, gateway.ChatResponse{Text: text})
}
