package notificationRepo

import (
	"context"

	"laborlink/models"
)

// NotificationRepository defines methods for notification data access.
type NotificationRepository interface {
	// Create stores n. Creating an id that already exists is a no-op, so
	// retried emissions never duplicate.
	Create(ctx context.Context, n *models.Notification) error
	// ListFor returns the recipient's notifications newest first.
	ListFor(ctx context.Context, userID string, role models.Role, unreadOnly bool, limit int64) ([]models.Notification, error)
	// MarkRead flips read on one notification owned by userID in role.
	MarkRead(ctx context.Context, id, userID string, role models.Role) (*models.Notification, error)
	// MarkAllRead flips read on every unread notification and returns how many changed.
	MarkAllRead(ctx context.Context, userID string, role models.Role) (int64, error)
	// CountUnread counts unread notifications for the recipient.
	CountUnread(ctx context.Context, userID string, role models.Role) (int64, error)
}
