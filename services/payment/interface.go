package payment

import (
	"context"
	"fmt"
	"time"

	bookingRepo "laborlink/database/repository/booking"
	directoryRepo "laborlink/database/repository/directory"
	"laborlink/models"
	"laborlink/services/booking"
	"laborlink/utils"

	"go.uber.org/zap"
)

// ChargeInput is one card charge attempt. A nil Amount falls back to the
// laborer's daily rate.
type ChargeInput struct {
	BookingID  string             `json:"bookingId"`
	CustomerID string             `json:"-"`
	Amount     *float64           `json:"amount"`
	Card       models.CardDetails `json:"card"`
}

// PaymentService runs the payment sub-workflow on accepted bookings.
type PaymentService interface {
	ChoosePaymentMethod(ctx context.Context, bookingID, customerID, method string) (*models.Booking, error)
	StartCardSession(ctx context.Context, bookingID, customerID, provider string) (*models.CardSession, error)
	ChargeCard(ctx context.Context, in ChargeInput) (*models.Booking, error)
}

// Authorizer approves or declines a card charge. A decline is a result;
// err is reserved for processor failures.
type Authorizer interface {
	Authorize(ctx context.Context, req models.ChargeRequest) (models.ChargeResult, error)
}

// SessionStarter creates a hosted checkout page and returns its URL.
type SessionStarter interface {
	Name() string
	StartSession(ctx context.Context, b *models.Booking, amount float64) (string, error)
}

// Locker serializes charge attempts per booking.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo       bookingRepo.BookingRepository
	Directory  directoryRepo.Directory
	Committer  *booking.Committer
	Authorizer Authorizer
	Sessions   SessionStarter
	Locker     Locker
	Currency   string
	LockTTL    time.Duration
	Logger     *zap.Logger

	now func() time.Time
}

func NewDefaultPaymentService(
	repo bookingRepo.BookingRepository,
	dir directoryRepo.Directory,
	committer *booking.Committer,
	authorizer Authorizer,
	locker Locker,
	currency string,
	logger *zap.Logger,
) (*DefaultPaymentService, error) {
	if repo == nil || dir == nil || committer == nil || authorizer == nil {
		return nil, fmt.Errorf("payment service initialization error: missing dependency")
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultPaymentService{
		Repo:       repo,
		Directory:  dir,
		Committer:  committer,
		Authorizer: authorizer,
		Locker:     locker,
		Currency:   currency,
		LockTTL:    utils.PaymentLockTTL,
		Logger:     logger,
		now:        time.Now,
	}, nil
}

// WithSessionStarter enables hosted checkout sessions.
func (s *DefaultPaymentService) WithSessionStarter(starter SessionStarter) *DefaultPaymentService {
	s.Sessions = starter
	return s
}

// SetClock overrides the time source. Used in tests.
func (s *DefaultPaymentService) SetClock(now func() time.Time) {
	s.now = now
}
