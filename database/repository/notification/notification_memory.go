package notificationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"laborlink/models"
	"laborlink/utils"
)

// MemoryNotificationRepo is an in-process NotificationRepository.
type MemoryNotificationRepo struct {
	mu    sync.RWMutex
	items []*models.Notification
	byID  map[string]*models.Notification

	// FailWrites makes Create fail with StoreUnavailable.
	FailWrites bool
}

// NewMemoryNotificationRepo returns an empty repository.
func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{byID: make(map[string]*models.Notification)}
}

func (r *MemoryNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWrites {
		return utils.NewStoreUnavailable("failed to store notification", nil)
	}
	if _, exists := r.byID[n.ID]; exists {
		return nil
	}
	stored := *n
	r.items = append(r.items, &stored)
	r.byID[n.ID] = &stored
	return nil
}

func (r *MemoryNotificationRepo) ListFor(_ context.Context, userID string, role models.Role, unreadOnly bool, limit int64) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Notification, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if n.UserID != userID || n.Role != role || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, *n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(_ context.Context, id, userID string, role models.Role) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok || n.UserID != userID || n.Role != role {
		return nil, utils.NewNotFound("Notification not found")
	}
	n.Read = true
	n.UpdatedAt = time.Now()
	out := *n
	return &out, nil
}

func (r *MemoryNotificationRepo) MarkAllRead(_ context.Context, userID string, role models.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	now := time.Now()
	for _, n := range r.items {
		if n.UserID == userID && n.Role == role && !n.Read {
			n.Read = true
			n.UpdatedAt = now
			changed++
		}
	}
	return changed, nil
}

func (r *MemoryNotificationRepo) CountUnread(_ context.Context, userID string, role models.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.items {
		if n.UserID == userID && n.Role == role && !n.Read {
			count++
		}
	}
	return count, nil
}

// All returns every stored notification in insertion order.
func (r *MemoryNotificationRepo) All() []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Notification, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, *n)
	}
	return out
}
