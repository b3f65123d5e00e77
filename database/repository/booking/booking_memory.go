package bookingRepo

import (
	"context"
	"sort"
	"sync"

	"laborlink/models"
	"laborlink/utils"
)

// MemoryBookingRepo is an in-process BookingRepository used with
// STORE_DRIVER=memory and in tests.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
	order    []string

	// FailWrites makes every write fail with StoreUnavailable.
	FailWrites bool
}

// NewMemoryBookingRepo returns an empty repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return utils.NewStoreUnavailable("failed to create booking", nil)
	}
	if _, exists := r.bookings[booking.ID]; exists {
		return utils.NewConflict("booking already exists")
	}
	r.bookings[booking.ID] = booking.Clone()
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, utils.NewNotFound("Booking not found")
	}
	return b.Clone(), nil
}

func (r *MemoryBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return utils.NewStoreUnavailable("failed to update booking", nil)
	}
	stored, ok := r.bookings[booking.ID]
	if !ok || stored.Version != booking.Version {
		return utils.NewConflict("booking was modified concurrently; reload and retry")
	}
	booking.Version++
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepo) ListByCustomer(_ context.Context, customerID string, limit int64) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool { return b.CustomerID == customerID }, limit), nil
}

func (r *MemoryBookingRepo) ListByLabor(_ context.Context, laborID string, decision models.Decision, limit int64) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool {
		return b.LaborID == laborID && (decision == "" || b.Decision == decision)
	}, limit), nil
}

// list returns matches newest first; ties keep reverse insertion order.
func (r *MemoryBookingRepo) list(match func(*models.Booking) bool, limit int64) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		b := r.bookings[r.order[i]]
		if match(b) {
			out = append(out, *b.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (r *MemoryBookingRepo) CountByDecision(_ context.Context, filter CountFilter) (models.BookingCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := models.NewBookingCounts()
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.LaborID != "" && b.LaborID != filter.LaborID {
			continue
		}
		counts[b.Decision]++
	}
	return counts, nil
}

func (r *MemoryBookingRepo) CountByPaymentStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int64{
		PaymentStatusNone:             0,
		string(models.PaymentPending): 0,
		string(models.PaymentPaid):    0,
	}
	for _, b := range r.bookings {
		if b.PaymentStatus == nil {
			counts[PaymentStatusNone]++
			continue
		}
		counts[string(*b.PaymentStatus)]++
	}
	return counts, nil
}
