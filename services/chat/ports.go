package chat

import (
	"context"
	"errors"
	"time"

	"poppi/models"
)

var (
	ErrBusy            = errors.New("a message is already being processed")
	ErrMissingRedirect = errors.New("checkout response did not include a redirect url")
)

// AvailabilityLookup returns the open slots of a calendar day.
type AvailabilityLookup interface {
	Lookup(ctx context.Context, day time.Time) (*models.AvailabilityResponse, error)
}

// CheckoutStarter opens a payment session for a completed booking.
type CheckoutStarter interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

// Redirector hands the user off to the payment page.
type Redirector interface {
	Redirect(url string)
}

// RedirectFunc adapts a function to Redirector.
type RedirectFunc func(url string)

func (f RedirectFunc) Redirect(url string) { f(url) }
