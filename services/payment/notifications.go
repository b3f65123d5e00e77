package payment

import (
	"strings"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"github.com/google/uuid"
)

func newLaborPaymentNotification(b *models.Booking, title, message string, meta map[string]any, now time.Time) models.Notification {
	return models.Notification{
		ID:        uuid.NewString(),
		UserID:    b.LaborID,
		Role:      models.RoleLabor,
		Type:      models.NotificationTypePayment,
		Title:     title,
		Message:   message,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func paymentMeta(b *models.Booking, labor *models.Labor, customer *models.Customer) map[string]any {
	meta := map[string]any{
		"bookingId":  b.ID,
		"customerId": b.CustomerID,
		"jobDate":    b.JobDate,
	}
	if b.PaymentMethod != nil {
		meta["paymentMethod"] = string(*b.PaymentMethod)
	}
	if b.PaymentStatus != nil {
		meta["paymentStatus"] = string(*b.PaymentStatus)
	}
	if customer != nil {
		meta["customerName"] = customer.Name
		meta["customerPhone"] = customer.Phone
		meta["customerEmail"] = customer.Email
		meta["customerAddress"] = customer.Address
	}
	if labor != nil {
		meta["laborName"] = labor.Name
		meta["skillCategory"] = labor.SkillCategory
	}
	return meta
}

func locationSuffix(customer *models.Customer) string {
	if customer == nil || customer.Address == "" {
		return ""
	}
	return " Location: " + customer.Address + "."
}

func cashChosenNotification(b *models.Booking, labor *models.Labor, customer *models.Customer, now time.Time) models.Notification {
	var msg strings.Builder
	msg.WriteString("The customer selected CASH for this job")
	if labor != nil && labor.DailyRate != nil {
		msg.WriteString(" (" + utils.FormatLKR(*labor.DailyRate) + ")")
	}
	msg.WriteString(".")
	msg.WriteString(locationSuffix(customer))

	return newLaborPaymentNotification(b, "Customer will pay in cash", msg.String(), paymentMeta(b, labor, customer), now)
}

func cardPaidNotification(b *models.Booking, labor *models.Labor, customer *models.Customer, amount float64, now time.Time) models.Notification {
	meta := paymentMeta(b, labor, customer)
	meta["paidAt"] = b.PaidAt
	meta["amount"] = amount

	msg := "Payment received (" + utils.FormatLKR(amount) + "). The job is ready to proceed." + locationSuffix(customer)
	return newLaborPaymentNotification(b, "Customer paid by card", msg, meta, now)
}
