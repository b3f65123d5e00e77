package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "laborlink/database/repository/booking"
	directoryRepo "laborlink/database/repository/directory"
	"laborlink/models"
	"laborlink/services/notification"

	"go.uber.org/zap"
)

// RecentLimit is how many bookings a summary carries.
const RecentLimit = 10

// CreateBookingInput is the customer's booking request.
type CreateBookingInput struct {
	LaborID string     `json:"laborId"`
	Note    string     `json:"note"`
	JobDate *time.Time `json:"jobDate"`
}

// StatusUpdate is the body of the unified status endpoint. Exactly one
// field is set: Status in the status vocabulary, or WorkStatus.
type StatusUpdate struct {
	Status     string `json:"status"`
	WorkStatus string `json:"workStatus"`
}

// BookingService drives the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, customerID string, in CreateBookingInput) (*models.Booking, error)
	GetForCustomer(ctx context.Context, bookingID, customerID string) (*models.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListForLabor(ctx context.Context, laborID, status string) ([]models.Booking, error)

	Accept(ctx context.Context, bookingID, laborID string) (*models.Booking, error)
	Decline(ctx context.Context, bookingID, laborID string) (*models.Booking, error)
	UpdateWorkStatus(ctx context.Context, bookingID, laborID string, ws models.WorkStatus) (*models.Booking, error)
	ApplyStatusUpdate(ctx context.Context, bookingID, laborID string, upd StatusUpdate) (*models.Booking, error)

	Summary(ctx context.Context, userID string, role models.Role) (*models.BookingSummary, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Directory     directoryRepo.Directory
	Notifications notification.NotificationService
	Committer     *Committer
	Logger        *zap.Logger

	now func() time.Time
}

func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	dir directoryRepo.Directory,
	notifSvc notification.NotificationService,
	committer *Committer,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if repo == nil || dir == nil || notifSvc == nil || committer == nil {
		return nil, fmt.Errorf("booking service initialization error: missing dependency")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Repo:          repo,
		Directory:     dir,
		Notifications: notifSvc,
		Committer:     committer,
		Logger:        logger,
		now:           time.Now,
	}, nil
}

// SetClock overrides the time source. Used in tests.
func (s *DefaultBookingService) SetClock(now func() time.Time) {
	s.now = now
}
