package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"poppi/models"
)

type fakeSessionAPI struct {
	created   []*stripe.CheckoutSessionParams
	newResult *stripe.CheckoutSession
	newErr    error
	getResult *stripe.CheckoutSession
	getErr    error
	gotID     string
}

func (f *fakeSessionAPI) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.created = append(f.created, params)
	if f.newErr != nil {
		return nil, f.newErr
	}
	return f.newResult, nil
}

func (f *fakeSessionAPI) Get(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.gotID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func testService(api sessionAPI) *StripeCheckoutService {
	return newService(api, Options{
		SecretKey: "sk_test_123",
		BaseURL:   "https://poppi.example/",
	}, zap.NewNop())
}

func TestCreateCheckoutSessionBuildsParams(t *testing.T) {
	api := &fakeSessionAPI{newResult: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/pay/cs_1"}}
	svc := testService(api)

	cs, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
		Name:  "Jane",
		Email: "jane@x.com",
		Slot:  "Monday 10:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", cs.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_1", cs.URL)

	require.Len(t, api.created, 1)
	p := api.created[0]
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "jane@x.com", *p.CustomerEmail)
	assert.Equal(t, []*string{stripe.String("card")}, p.PaymentMethodTypes)
	assert.Equal(t, "https://poppi.example/success?session_id={CHECKOUT_SESSION_ID}", *p.SuccessURL)
	assert.Equal(t, "https://poppi.example/schedule", *p.CancelURL)
	assert.Equal(t, "Jane", p.Metadata["client_name"])
	assert.Equal(t, "Monday 10:00 AM", p.Metadata["consultation_slot"])

	require.Len(t, p.LineItems, 1)
	item := p.LineItems[0]
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.Equal(t, int64(1500), *item.PriceData.UnitAmount)
	assert.Equal(t, "Consultation Session", *item.PriceData.ProductData.Name)
	assert.Equal(t, "Booking for Monday 10:00 AM", *item.PriceData.ProductData.Description)
}

func TestCreateCheckoutSessionDefaults(t *testing.T) {
	api := &fakeSessionAPI{newResult: &stripe.CheckoutSession{ID: "cs_2", URL: "https://checkout.stripe.com/pay/cs_2"}}
	svc := testService(api)

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{Email: "a@b.com"})
	require.NoError(t, err)

	p := api.created[0]
	assert.Equal(t, "Client", p.Metadata["client_name"])
	assert.Equal(t, "Unknown slot", p.Metadata["consultation_slot"])
	assert.Equal(t, "Booking for Unknown slot", *p.LineItems[0].PriceData.ProductData.Description)
}

func TestCreateCheckoutSessionRequiresEmail(t *testing.T) {
	api := &fakeSessionAPI{}
	svc := testService(api)

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{Name: "Jane", Email: "  "})
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, api.created, "provider must not be called without an email")
}

func TestCreateCheckoutSessionNotConfigured(t *testing.T) {
	api := &fakeSessionAPI{}
	svc := newService(api, Options{}, zap.NewNop())

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, api.created)
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	api := &fakeSessionAPI{newErr: errors.New("card declined")}
	svc := testService(api)

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{Email: "a@b.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}

func TestCustomAmountAndCurrency(t *testing.T) {
	api := &fakeSessionAPI{newResult: &stripe.CheckoutSession{ID: "cs_3"}}
	svc := newService(api, Options{SecretKey: "sk", Currency: "eur", AmountCents: 4200}, zap.NewNop())

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(4200), svc.AmountCents())
	assert.Equal(t, "eur", *api.created[0].LineItems[0].PriceData.Currency)
	assert.Equal(t, int64(4200), *api.created[0].LineItems[0].PriceData.UnitAmount)
}

func TestGetCheckoutSession(t *testing.T) {
	api := &fakeSessionAPI{getResult: &stripe.CheckoutSession{
		ID:            "cs_9",
		Status:        stripe.CheckoutSessionStatusComplete,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		CustomerEmail: "jane@x.com",
		Metadata:      map[string]string{"client_name": "Jane", "consultation_slot": "Monday 10:00 AM"},
	}}
	svc := testService(api)

	st, err := svc.GetCheckoutSession(context.Background(), "cs_9")
	require.NoError(t, err)
	assert.Equal(t, "cs_9", api.gotID)
	assert.Equal(t, &models.CheckoutStatus{
		ID:            "cs_9",
		Status:        "complete",
		PaymentStatus: "paid",
		CustomerEmail: "jane@x.com",
		ClientName:    "Jane",
		Slot:          "Monday 10:00 AM",
	}, st)
}

func TestGetCheckoutSessionNotFound(t *testing.T) {
	api := &fakeSessionAPI{getErr: &stripe.Error{HTTPStatusCode: 404, Msg: "No such checkout.session"}}
	svc := testService(api)

	_, err := svc.GetCheckoutSession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
