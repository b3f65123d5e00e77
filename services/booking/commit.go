package booking

import (
	"context"

	"laborlink/database"
	bookingRepo "laborlink/database/repository/booking"
	"laborlink/models"
	"laborlink/services/notification"
	"laborlink/utils"
)

// Committer persists a transition: the booking write plus the notifications
// it produced. With a Transactor both commit atomically; without one the
// booking commits first and notifications are dispatched best-effort.
type Committer struct {
	repo       bookingRepo.BookingRepository
	notifSvc   notification.NotificationService
	dispatcher *notification.Dispatcher
	tx         database.Transactor
}

// NewCommitter builds a committer. tx may be nil.
func NewCommitter(
	repo bookingRepo.BookingRepository,
	notifSvc notification.NotificationService,
	dispatcher *notification.Dispatcher,
	tx database.Transactor,
) *Committer {
	return &Committer{repo: repo, notifSvc: notifSvc, dispatcher: dispatcher, tx: tx}
}

// Transactional reports whether notifications commit with the booking.
func (c *Committer) Transactional() bool {
	return c.tx != nil
}

// Commit writes b conditionally on b.Version and emits notes.
func (c *Committer) Commit(ctx context.Context, b *models.Booking, notes []models.Notification) error {
	if c.tx == nil {
		if err := c.repo.Update(ctx, b); err != nil {
			return err
		}
		if len(notes) > 0 {
			c.dispatcher.Dispatch(ctx, notes)
		}
		return nil
	}

	base := b.Version
	err := c.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		// The driver may rerun this on transient errors.
		b.Version = base
		if err := c.repo.Update(txCtx, b); err != nil {
			return err
		}
		for i := range notes {
			if err := c.notifSvc.Emit(txCtx, &notes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		b.Version = base
		if utils.KindOf(err) != utils.KindInternal {
			return err
		}
		return utils.NewStoreUnavailable("failed to commit booking transition", err)
	}
	return nil
}
