package bookingRepo

import (
	"context"

	"laborlink/models"
)

// CountFilter scopes a decision aggregation. Empty fields match everything.
type CountFilter struct {
	CustomerID string
	LaborID    string
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its ID. Missing bookings are NotFound.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Update writes booking if its stored version still equals booking.Version,
	// then bumps booking.Version. A stale version is a Conflict.
	Update(ctx context.Context, booking *models.Booking) error
	// ListByCustomer returns the customer's bookings newest first. limit <= 0 means no limit.
	ListByCustomer(ctx context.Context, customerID string, limit int64) ([]models.Booking, error)
	// ListByLabor returns bookings targeting the laborer, newest first. An empty
	// decision matches every decision.
	ListByLabor(ctx context.Context, laborID string, decision models.Decision, limit int64) ([]models.Booking, error)
	// CountByDecision aggregates booking totals per decision.
	CountByDecision(ctx context.Context, filter CountFilter) (models.BookingCounts, error)
	// CountByPaymentStatus aggregates booking totals per payment status; unset is "none".
	CountByPaymentStatus(ctx context.Context) (map[string]int64, error)
}

// PaymentStatusNone keys bookings with no payment chosen in CountByPaymentStatus.
const PaymentStatusNone = "none"
