package payment

import (
	"context"
	"strings"

	"laborlink/models"
	"laborlink/services/booking"
	"laborlink/utils"

	"go.uber.org/zap"
)

// ChoosePaymentMethod records cash or card on an accepted booking. Cash
// notifies the laborer right away; card waits for ChargeCard.
func (s *DefaultPaymentService) ChoosePaymentMethod(ctx context.Context, bookingID, customerID, method string) (*models.Booking, error) {
	chosen, ok := models.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	if !ok {
		return nil, utils.NewInvalidInput("method must be 'cash' or 'card'")
	}
	if err := booking.ParseBookingID(bookingID); err != nil {
		return nil, err
	}

	// Same per-booking lock as ChargeCard.
	release, err := s.lock(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := s.loadPayable(ctx, bookingID, customerID, "You can choose payment after the labor accepts the booking")
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := models.PaymentPending
	if chosen == models.PaymentCash && b.PaymentStatus != nil {
		status = *b.PaymentStatus
	}
	b.SetPayment(chosen, status, now)

	var notes []models.Notification
	if chosen == models.PaymentCash {
		labor := s.lookupLabor(ctx, b.LaborID)
		customer := s.lookupCustomer(ctx, b.CustomerID)
		notes = append(notes, cashChosenNotification(b, labor, customer, now))
	}

	if err := s.Committer.Commit(ctx, b, notes); err != nil {
		return nil, err
	}
	s.Logger.Info("payment method chosen",
		zap.String("bookingId", b.ID),
		zap.String("method", string(chosen)),
	)
	return b, nil
}

// StartCardSession returns where the customer should enter card details.
// Without a hosted checkout the URL is nil and the embedded form is used.
func (s *DefaultPaymentService) StartCardSession(ctx context.Context, bookingID, customerID, provider string) (*models.CardSession, error) {
	b, err := s.loadPayable(ctx, bookingID, customerID, "Payment is allowed only after acceptance")
	if err != nil {
		return nil, err
	}

	if s.Sessions == nil {
		if provider == "" {
			provider = "in-app"
		}
		return &models.CardSession{URL: nil, Provider: provider}, nil
	}

	labor := s.lookupLabor(ctx, b.LaborID)
	if labor == nil || labor.DailyRate == nil {
		return &models.CardSession{URL: nil, Provider: "in-app"}, nil
	}
	url, err := s.Sessions.StartSession(ctx, b, *labor.DailyRate)
	if err != nil {
		return nil, utils.NewStoreUnavailable("failed to start checkout session", err)
	}
	return &models.CardSession{URL: &url, Provider: s.Sessions.Name()}, nil
}

// ChargeCard authorizes a card payment and marks the booking paid.
// A decline leaves the booking untouched.
func (s *DefaultPaymentService) ChargeCard(ctx context.Context, in ChargeInput) (*models.Booking, error) {
	if !in.Card.Complete() {
		return nil, utils.NewInvalidInput("Missing card details")
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return nil, utils.NewInvalidInput("amount must be positive")
	}
	if err := booking.ParseBookingID(in.BookingID); err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := s.loadPayable(ctx, in.BookingID, in.CustomerID, "Cannot pay for a booking that is not accepted")
	if err != nil {
		return nil, err
	}
	if b.IsPaid() {
		return nil, utils.NewInvalidState("Booking is already paid")
	}

	labor := s.lookupLabor(ctx, b.LaborID)
	amount, err := resolveAmount(in.Amount, labor)
	if err != nil {
		return nil, err
	}

	result, err := s.Authorizer.Authorize(ctx, models.ChargeRequest{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Amount:     amount,
		Currency:   s.Currency,
		Card:       in.Card,
	})
	if err != nil {
		return nil, utils.NewStoreUnavailable("payment processor unavailable", err)
	}
	if !result.Approved {
		s.Logger.Info("card declined", zap.String("bookingId", b.ID), zap.String("reason", result.Reason))
		reason := result.Reason
		if reason == "" {
			reason = "Card was declined"
		}
		return nil, utils.NewPaymentDeclined(reason)
	}

	now := s.now()
	b.SetPayment(models.PaymentCard, models.PaymentPaid, now)
	customer := s.lookupCustomer(ctx, b.CustomerID)
	notes := []models.Notification{cardPaidNotification(b, labor, customer, amount, now)}

	if err := s.Committer.Commit(ctx, b, notes); err != nil {
		s.Logger.Error("charge approved but booking write failed",
			zap.String("bookingId", b.ID),
			zap.String("reference", result.Reference),
			zap.Error(err),
		)
		return nil, err
	}
	s.Logger.Info("card payment recorded",
		zap.String("bookingId", b.ID),
		zap.String("reference", result.Reference),
		zap.Float64("amount", amount),
	)
	return b, nil
}

// loadPayable fetches a booking owned by customerID that is accepted.
func (s *DefaultPaymentService) loadPayable(ctx context.Context, bookingID, customerID, notAcceptedMsg string) (*models.Booking, error) {
	if err := booking.ParseBookingID(bookingID); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, utils.NewNotFound("Booking not found")
	}
	if b.Status != models.StatusAccepted {
		return nil, utils.NewInvalidState(notAcceptedMsg)
	}
	return b, nil
}

// lock takes the per-booking payment lock shared by method choice and charge.
func (s *DefaultPaymentService) lock(ctx context.Context, bookingID string) (func(), error) {
	release, ok, err := s.Locker.Acquire(ctx, bookingID, s.LockTTL)
	if err != nil {
		return nil, utils.NewStoreUnavailable("failed to acquire payment lock", err)
	}
	if !ok {
		return nil, utils.NewConflict("A payment for this booking is already in progress")
	}
	return release, nil
}

func resolveAmount(explicit *float64, labor *models.Labor) (float64, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if labor != nil && labor.DailyRate != nil {
		return *labor.DailyRate, nil
	}
	return 0, utils.NewInvalidInput("Amount is required (labor dailyRate not available)")
}

func (s *DefaultPaymentService) lookupLabor(ctx context.Context, laborID string) *models.Labor {
	labor, err := s.Directory.FindLaborByID(ctx, laborID)
	if err != nil {
		s.Logger.Warn("labor lookup failed", zap.String("laborId", laborID), zap.Error(err))
		return nil
	}
	return labor
}

func (s *DefaultPaymentService) lookupCustomer(ctx context.Context, customerID string) *models.Customer {
	customer, err := s.Directory.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.Logger.Warn("customer lookup failed", zap.String("customerId", customerID), zap.Error(err))
		return nil
	}
	return customer
}
