package payment

import (
	"context"
	"fmt"

	"laborlink/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeCheckout starts hosted Stripe Checkout sessions.
type StripeCheckout struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

func NewStripeCheckout(currency, successURL, cancelURL string) *StripeCheckout {
	return &StripeCheckout{Currency: currency, SuccessURL: successURL, CancelURL: cancelURL}
}

func (c *StripeCheckout) Name() string {
	return "stripe"
}

func (c *StripeCheckout) StartSession(ctx context.Context, b *models.Booking, amount float64) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.SuccessURL),
		CancelURL:         stripe.String(c.CancelURL),
		ClientReferenceID: stripe.String(b.ID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Booking %s", b.ID)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", b.ID)

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return s.URL, nil
}
