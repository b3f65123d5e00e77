package booking

import (
	"context"

	bookingRepo "laborlink/database/repository/booking"
	"laborlink/models"
	"laborlink/utils"
)

// Summary aggregates the caller's bookings per decision, with recent
// bookings and the unread notification count.
func (s *DefaultBookingService) Summary(ctx context.Context, userID string, role models.Role) (*models.BookingSummary, error) {
	var (
		filter bookingRepo.CountFilter
		recent []models.Booking
		err    error
	)
	switch role {
	case models.RoleCustomer:
		filter.CustomerID = userID
		recent, err = s.Repo.ListByCustomer(ctx, userID, RecentLimit)
	case models.RoleLabor:
		filter.LaborID = userID
		recent, err = s.Repo.ListByLabor(ctx, userID, "", RecentLimit)
	default:
		return nil, utils.NewForbidden("Summary is available to customers and laborers")
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.Repo.CountByDecision(ctx, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.Notifications.CountUnread(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return &models.BookingSummary{
		Counts:              counts,
		Recent:              recent,
		UnreadNotifications: unread,
	}, nil
}

// AdminStats aggregates every booking by decision and payment status.
func (s *DefaultBookingService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	byDecision, err := s.Repo.CountByDecision(ctx, bookingRepo.CountFilter{})
	if err != nil {
		return nil, err
	}
	byPayment, err := s.Repo.CountByPaymentStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AdminStats{ByDecision: byDecision, ByPaymentStatus: byPayment}, nil
}
