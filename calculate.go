package main

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// writeHealthError maps engine errors onto HTTP responses. Returns false when
// err is not one of the engine's error kinds.
func writeHealthError(c *gin.Context, err error) bool {
	var verr *health.ValidationError
	switch {
	case errors.As(err, &verr):
		apiError(c, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, health.ErrDegenerate):
		apiError(c, http.StatusUnprocessableEntity, "no result")
	default:
		return false
	}
	return true
}

// evaluateRequest binds a calculator form and runs it through the engine.
// On failure the response has already been written and ok is false.
func evaluateRequest(c *gin.Context) (res health.Result, ok bool) {
	var in health.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return res, false
	}

	res, err := health.Evaluate(in)
	if err != nil {
		if !writeHealthError(c, err) {
			log.Printf("[calculate] unexpected error: %v", err)
			apiError(c, http.StatusInternalServerError, "calculation failed")
		}
		return res, false
	}
	return res, true
}

// calculate handles POST /api/bmi/calculate. Validates the form, computes the
// metrics and recommendations, and returns them with the snapshot the client
// should keep for the chat assistant. Nothing is stored.
func (h *Handler) calculate(c *gin.Context) {
	res, ok := evaluateRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// scale handles GET /api/bmi/scale?height_cm=180 and returns the weight range
// of every BMI band at that height.
func (h *Handler) scale(c *gin.Context) {
	raw := c.Query("height_cm")
	if raw == "" {
		apiError(c, http.StatusBadRequest, "height_cm query param is required")
		return
	}
	heightCm, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(heightCm) || math.IsInf(heightCm, 0) || heightCm <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be a positive number")
		return
	}

	bands, err := health.Scale(heightCm)
	if err != nil {
		writeHealthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"height_cm": heightCm,
		"bands":     bands,
	})
}

// activityLevel is one entry of GET /api/bmi/activity-levels.
type activityLevel struct {
	Value       health.ActivityLevel `json:"value"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Multiplier  float64              `json:"multiplier"`
}

// activityLevels lists the accepted activity levels for the calculator form.
func (h *Handler) activityLevels(c *gin.Context) {
	levels := health.ActivityLevels()
	out := make([]activityLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, activityLevel{
			Value:       l,
			Label:       l.Label(),
			Description: l.Description(),
			Multiplier:  l.Multiplier(),
		})
	}
	c.JSON(http.StatusOK, out)
}
