package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poppi/models"
	"poppi/services/availability"
	"poppi/utils"
)

type availabilityService interface {
	Lookup(ctx context.Context, day time.Time) (*models.AvailabilityResponse, error)
}

type AvailabilityHandler struct {
	svc availabilityService
}

func NewAvailabilityHandler(svc availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// GetAvailability handles GET /api/availability?day=YYYY-MM-DD.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	day, err := availability.ParseDay(c.Query("day"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid or missing date parameter (YYYY-MM-DD required)", err)
		return
	}

	resp, err := h.svc.Lookup(c.Request.Context(), day)
	if errors.Is(err, availability.ErrCalendarNotConfigured) {
		utils.JSONError(c, http.StatusServiceUnavailable, "Calendar service unavailable", err)
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability", err)
		return
	}

	getLogger(c).Debug("availability served",
		zap.String("date", resp.Date),
		zap.Int("slots", len(resp.AvailableSlots)),
	)
	c.JSON(http.StatusOK, resp)
}
