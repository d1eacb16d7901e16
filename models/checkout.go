package models

// CheckoutRequest carries the query parameters of GET /api/create-checkout-session.
type CheckoutRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Slot  string `form:"slot" json:"slot"`
}

// CheckoutSession is the payment handoff returned to the caller.
type CheckoutSession struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

// CheckoutStatus summarises a checkout session for the success page.
type CheckoutStatus struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	Slot          string `json:"slot,omitempty"`
}
