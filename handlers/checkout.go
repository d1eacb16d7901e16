package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poppi/models"
	"poppi/services/payment"
	"poppi/utils"
)

type checkoutService interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutStatus, error)
}

type CheckoutHandler struct {
	svc checkoutService
}

func NewCheckoutHandler(svc checkoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// CreateCheckoutSession handles GET /api/create-checkout-session?name=&email=&slot=.
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	session, err := h.svc.CreateCheckoutSession(c.Request.Context(), req)
	switch {
	case errors.Is(err, payment.ErrEmailRequired):
		utils.JSONError(c, http.StatusBadRequest, "Email is required", err)
		return
	case errors.Is(err, payment.ErrNotConfigured):
		utils.JSONError(c, http.StatusServiceUnavailable, "Payment service unavailable", err)
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create checkout session", err)
		return
	}

	getLogger(c).Info("checkout session issued", zap.String("sessionID", session.ID))
	c.JSON(http.StatusOK, session)
}

// GetCheckoutSession handles GET /api/checkout-session/:id.
func (h *CheckoutHandler) GetCheckoutSession(c *gin.Context) {
	status, err := h.svc.GetCheckoutSession(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, payment.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Checkout session not found", err)
		return
	case errors.Is(err, payment.ErrNotConfigured):
		utils.JSONError(c, http.StatusServiceUnavailable, "Payment service unavailable", err)
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch checkout session", err)
		return
	}
	c.JSON(http.StatusOK, status)
}
