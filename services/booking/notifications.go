package booking

import (
	"time"

	"laborlink/models"

	"github.com/google/uuid"
)

func newCustomerBookingNotification(b *models.Booking, title, message string, meta map[string]any, now time.Time) models.Notification {
	return models.Notification{
		ID:        uuid.NewString(),
		UserID:    b.CustomerID,
		Role:      models.RoleCustomer,
		Type:      models.NotificationTypeBooking,
		Title:     title,
		Message:   message,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func laborMeta(b *models.Booking, labor *models.Labor) map[string]any {
	meta := map[string]any{
		"bookingId": b.ID,
		"laborId":   b.LaborID,
	}
	if labor != nil {
		meta["laborName"] = labor.Name
		meta["skillCategory"] = labor.SkillCategory
	}
	return meta
}

func decisionNotification(b *models.Booking, labor *models.Labor, now time.Time) models.Notification {
	meta := laborMeta(b, labor)
	meta["decision"] = b.Decision
	meta["status"] = b.Status

	title := "Booking Accepted"
	verb := "accepted"
	if b.Decision == models.DecisionDeclined {
		title = "Booking Declined"
		verb = "declined"
	}
	message := laborDisplayName(labor) + " " + verb + " your booking request."
	return newCustomerBookingNotification(b, title, message, meta, now)
}

func workCompletedNotification(b *models.Booking, labor *models.Labor, now time.Time) models.Notification {
	meta := laborMeta(b, labor)
	meta["workStatus"] = b.WorkStatus
	meta["completedAt"] = b.CompletedAt

	message := laborDisplayName(labor) + " marked your job as completed."
	return newCustomerBookingNotification(b, "Work Completed", message, meta, now)
}
