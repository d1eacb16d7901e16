package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"poppi/models"
	"poppi/services/availability"
)

// HTTPCollaborator reaches the availability and checkout endpoints over
// HTTP. It satisfies both AvailabilityLookup and CheckoutStarter.
type HTTPCollaborator struct {
	httpClient *resty.Client
}

type errorBody struct {
	Error string `json:"error"`
}

func NewHTTPCollaborator(baseURL string, timeout time.Duration) *HTTPCollaborator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &HTTPCollaborator{httpClient: client}
}

func (h *HTTPCollaborator) Lookup(ctx context.Context, day time.Time) (*models.AvailabilityResponse, error) {
	var out models.AvailabilityResponse
	var apiErr errorBody
	resp, err := h.httpClient.R().
		SetContext(ctx).
		SetQueryParam("day", availability.FormatDay(day)).
		SetResult(&out).
		SetError(&apiErr).
		Get("/api/availability")
	if err != nil {
		return nil, fmt.Errorf("availability request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: %s", availability.ErrCalendarNotConfigured, apiErr.Error)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("availability error (%d): %s", resp.StatusCode(), apiErr.Error)
	}
	return &out, nil
}

func (h *HTTPCollaborator) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	var out models.CheckoutSession
	var apiErr errorBody
	resp, err := h.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":  req.Name,
			"email": req.Email,
			"slot":  req.Slot,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Get("/api/create-checkout-session")
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("checkout error (%d): %s", resp.StatusCode(), apiErr.Error)
	}
	if out.URL == "" {
		return nil, ErrMissingRedirect
	}
	return &out, nil
}
