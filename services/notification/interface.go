package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "laborlink/database/repository/notification"
	"laborlink/models"
	"laborlink/utils"

	"github.com/google/uuid"
)

// MaxListLimit caps how many notifications a listing returns.
const MaxListLimit = 100

// NotificationService stores and reads per-recipient notifications.
type NotificationService interface {
	Emit(ctx context.Context, n *models.Notification) error
	ListFor(ctx context.Context, userID string, role models.Role, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string, role models.Role) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string, role models.Role) (int64, error)
	CountUnread(ctx context.Context, userID string, role models.Role) (int64, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo notificationRepo.NotificationRepository
	now  func() time.Time
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{repo: repo, now: time.Now}, nil
}

// Emit stores n unread. Missing id and timestamps are filled in.
func (s *DefaultNotificationService) Emit(ctx context.Context, n *models.Notification) error {
	if n.UserID == "" {
		return utils.NewInvalidInput("notification recipient is required")
	}
	if _, ok := models.ParseRole(string(n.Role)); !ok {
		return utils.NewInvalidInput("notification role is invalid")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	n.UpdatedAt = n.CreatedAt
	n.Read = false
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	return s.repo.Create(ctx, n)
}

func (s *DefaultNotificationService) ListFor(ctx context.Context, userID string, role models.Role, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.ListFor(ctx, userID, role, unreadOnly, MaxListLimit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string, role models.Role) (*models.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.NewInvalidInput("Invalid notification id")
	}
	return s.repo.MarkRead(ctx, id, userID, role)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string, role models.Role) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, role)
}

func (s *DefaultNotificationService) CountUnread(ctx context.Context, userID string, role models.Role) (int64, error) {
	return s.repo.CountUnread(ctx, userID, role)
}
