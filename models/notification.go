package models

import "time"

// Role partitions notifications by the recipient's acting role.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleLabor    Role = "labor"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role value.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleCustomer, RoleLabor, RoleAdmin:
		return r, true
	}
	return "", false
}

const (
	NotificationTypeBooking = "booking"
	NotificationTypePayment = "payment"
)

// Notification is an append-only event record for one user in one role.
// Only Read ever changes after creation.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Role      Role           `bson:"role" json:"role"`
	Type      string         `bson:"type" json:"type"`
	Title     string         `bson:"title" json:"title"`
	Message   string         `bson:"message" json:"message"`
	Meta      map[string]any `bson:"meta" json:"meta"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
