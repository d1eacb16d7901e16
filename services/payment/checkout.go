package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"poppi/models"
)

var (
	ErrEmailRequired   = errors.New("email is required")
	ErrNotConfigured   = errors.New("payment provider is not configured")
	ErrSessionNotFound = errors.New("checkout session not found")
)

const (
	defaultClientName  = "Client"
	defaultSlot        = "Unknown slot"
	productName        = "Consultation Session"
	metadataClientName = "client_name"
	metadataSlot       = "consultation_slot"
)

// sessionAPI is the subset of the Stripe checkout session client in use.
type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Options configures the consultation product sold at checkout.
type Options struct {
	SecretKey   string
	Currency    string
	AmountCents int64
	BaseURL     string
}

// StripeCheckoutService creates hosted Stripe Checkout sessions for consultations.
type StripeCheckoutService struct {
	api    sessionAPI
	opts   Options
	logger *zap.Logger
}

// NewStripeCheckoutService builds a service bound to its own API key rather
// than the package-level stripe.Key.
func NewStripeCheckoutService(opts Options, logger *zap.Logger) *StripeCheckoutService {
	return newService(session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: opts.SecretKey}, opts, logger)
}

func newService(api sessionAPI, opts Options, logger *zap.Logger) *StripeCheckoutService {
	if opts.Currency == "" {
		opts.Currency = string(stripe.CurrencyUSD)
	}
	if opts.AmountCents <= 0 {
		opts.AmountCents = 1500
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &StripeCheckoutService{api: api, opts: opts, logger: logger}
}

// AmountCents is the consultation price charged per session.
func (s *StripeCheckoutService) AmountCents() int64 {
	return s.opts.AmountCents
}

// CreateCheckoutSession starts a one-item payment session for the requested slot.
func (s *StripeCheckoutService) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if s.opts.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultClientName
	}
	slot := strings.TrimSpace(req.Slot)
	if slot == "" {
		slot = defaultSlot
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.opts.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String("Booking for " + slot),
					},
					UnitAmount: stripe.Int64(s.opts.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(s.opts.BaseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.opts.BaseURL + "/schedule"),
	}
	params.Context = ctx
	params.AddMetadata(metadataClientName, name)
	params.AddMetadata(metadataSlot, slot)

	cs, err := s.api.New(params)
	if err != nil {
		s.logger.Error("stripe checkout session creation failed", zap.String("slot", slot), zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("checkout session created", zap.String("sessionID", cs.ID), zap.String("slot", slot))
	return &models.CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

// GetCheckoutSession reports the payment state of a previously created session.
func (s *StripeCheckoutService) GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutStatus, error) {
	if s.opts.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := s.api.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get checkout session: %w", err)
	}

	return &models.CheckoutStatus{
		ID:            cs.ID,
		Status:        string(cs.Status),
		PaymentStatus: string(cs.PaymentStatus),
		CustomerEmail: cs.CustomerEmail,
		ClientName:    cs.Metadata[metadataClientName],
		Slot:          cs.Metadata[metadataSlot],
	}, nil
}
