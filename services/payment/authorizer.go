package payment

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode"

	"laborlink/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/paymentmethod"
)

// MockAuthorizer approves cards whose digits end with ApproveSuffix.
type MockAuthorizer struct {
	ApproveSuffix string
}

func NewMockAuthorizer(suffix string) *MockAuthorizer {
	if suffix == "" {
		suffix = "4242"
	}
	return &MockAuthorizer{ApproveSuffix: suffix}
}

func (a *MockAuthorizer) Authorize(_ context.Context, req models.ChargeRequest) (models.ChargeResult, error) {
	if strings.HasSuffix(digitsOnly(req.Card.Number), a.ApproveSuffix) {
		return models.ChargeResult{Approved: true, Reference: "mock_" + uuid.NewString()}, nil
	}
	return models.ChargeResult{
		Approved: false,
		Reason:   "Card was declined (mock). Use a number ending with " + a.ApproveSuffix + ".",
	}, nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// StripeAuthorizer charges through Stripe PaymentIntents. stripe.Key must be set.
type StripeAuthorizer struct{}

func NewStripeAuthorizer() *StripeAuthorizer {
	return &StripeAuthorizer{}
}

func (a *StripeAuthorizer) Authorize(ctx context.Context, req models.ChargeRequest) (models.ChargeResult, error) {
	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(digitsOnly(req.Card.Number)),
			ExpMonth: stripe.Int64(int64(req.Card.ExpMonth)),
			ExpYear:  stripe.Int64(int64(req.Card.ExpYear)),
			CVC:      stripe.String(req.Card.CVC),
		},
	}
	pmParams.Context = ctx
	pm, err := paymentmethod.New(pmParams)
	if err != nil {
		return declineOrError(err)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(toMinorUnits(req.Amount)),
		Currency:           stripe.String(req.Currency),
		PaymentMethod:      stripe.String(pm.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	piParams.Context = ctx
	piParams.AddMetadata("bookingId", req.BookingID)
	piParams.AddMetadata("customerId", req.CustomerID)
	piParams.SetIdempotencyKey("charge-" + req.BookingID + "-" + pm.ID)

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return declineOrError(err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return models.ChargeResult{Approved: false, Reference: pi.ID, Reason: "Payment was not completed (" + string(pi.Status) + ")"}, nil
	}
	return models.ChargeResult{Approved: true, Reference: pi.ID}, nil
}

// declineOrError turns card errors into declines and passes the rest through.
func declineOrError(err error) (models.ChargeResult, error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
		reason := stripeErr.Msg
		if reason == "" {
			reason = "Card was declined"
		}
		return models.ChargeResult{Approved: false, Reason: reason}, nil
	}
	return models.ChargeResult{}, err
}

// toMinorUnits converts rupees to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
