package booking

import (
	"context"
	"strings"

	directoryRepo "laborlink/database/repository/directory"
	"laborlink/models"
	"laborlink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create opens a booking in the requested state for an active laborer.
func (s *DefaultBookingService) Create(ctx context.Context, customerID string, in CreateBookingInput) (*models.Booking, error) {
	laborID := strings.TrimSpace(in.LaborID)
	if laborID == "" {
		return nil, utils.NewInvalidInput("laborId is required")
	}

	labor, err := directoryRepo.Fresh(s.Directory).FindLaborByID(ctx, laborID)
	if err != nil {
		return nil, err
	}
	if !labor.IsActive {
		return nil, utils.NewInvalidState("Labor is not currently accepting bookings")
	}

	b := models.NewBooking(uuid.NewString(), customerID, laborID, in.Note, in.JobDate, s.now())
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("customerId", customerID),
		zap.String("laborId", laborID),
	)
	return b, nil
}

// GetForCustomer returns a booking owned by customerID.
func (s *DefaultBookingService) GetForCustomer(ctx context.Context, bookingID, customerID string) (*models.Booking, error) {
	if err := ParseBookingID(bookingID); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, utils.NewNotFound("Booking not found")
	}
	return b, nil
}

// ListForCustomer returns the customer's bookings newest first.
func (s *DefaultBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Repo.ListByCustomer(ctx, customerID, 0)
}

// ListForLabor returns the laborer's bookings in one status, pending by default.
// The status filter is translated to the canonical decision.
func (s *DefaultBookingService) ListForLabor(ctx context.Context, laborID, status string) ([]models.Booking, error) {
	if status == "" {
		status = string(models.StatusPending)
	}
	st, ok := models.ParseStatus(strings.ToLower(status))
	if !ok {
		return nil, utils.NewInvalidInput("status must be pending, accepted, rejected or cancelled")
	}
	return s.Repo.ListByLabor(ctx, laborID, models.StatusToDecision(st), 0)
}

// loadForLabor fetches a booking that targets laborID.
func (s *DefaultBookingService) loadForLabor(ctx context.Context, bookingID, laborID string) (*models.Booking, error) {
	if err := ParseBookingID(bookingID); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.LaborID != laborID {
		return nil, utils.NewNotFound("Booking not found")
	}
	return b, nil
}

// lookupLabor returns nil when the laborer cannot be read; notifications
// then fall back to generic wording.
func (s *DefaultBookingService) lookupLabor(ctx context.Context, laborID string) *models.Labor {
	labor, err := s.Directory.FindLaborByID(ctx, laborID)
	if err != nil {
		s.Logger.Warn("labor lookup failed", zap.String("laborId", laborID), zap.Error(err))
		return nil
	}
	return labor
}
