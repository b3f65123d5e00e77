package models

import "time"

// Decision is the canonical booking lifecycle value.
type Decision string

const (
	DecisionRequested Decision = "requested"
	DecisionAccepted  Decision = "accepted"
	DecisionDeclined  Decision = "declined"
	DecisionCancelled Decision = "cancelled"
)

// Status is the alternate query vocabulary for the same lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// WorkStatus tracks job progress after acceptance.
type WorkStatus string

const (
	WorkPending WorkStatus = "pending"
	WorkDone    WorkStatus = "done"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Decisions lists every decision in lifecycle order.
var Decisions = []Decision{DecisionRequested, DecisionAccepted, DecisionDeclined, DecisionCancelled}

// DecisionToStatus projects a decision onto the status vocabulary.
func DecisionToStatus(d Decision) Status {
	switch d {
	case DecisionAccepted:
		return StatusAccepted
	case DecisionDeclined:
		return StatusRejected
	case DecisionCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// StatusToDecision is the inverse of DecisionToStatus.
func StatusToDecision(s Status) Decision {
	switch s {
	case StatusAccepted:
		return DecisionAccepted
	case StatusRejected:
		return DecisionDeclined
	case StatusCancelled:
		return DecisionCancelled
	default:
		return DecisionRequested
	}
}

// ParseStatus validates a status filter value.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return st, true
	}
	return "", false
}

// ParseWorkStatus validates a work status value.
func ParseWorkStatus(s string) (WorkStatus, bool) {
	switch ws := WorkStatus(s); ws {
	case WorkPending, WorkDone:
		return ws, true
	}
	return "", false
}

// ParsePaymentMethod validates a payment method value.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentCard:
		return m, true
	}
	return "", false
}

// Booking is one customer's request for a specific laborer's services.
//
// Decision is the only writable lifecycle field; Status is persisted for
// status-vocabulary readers and is rewritten by SetDecision. All lifecycle
// mutations go through the setters below so the timestamp rules hold.
type Booking struct {
	ID         string     `bson:"id" json:"id"`
	CustomerID string     `bson:"customerId" json:"customerId"`
	LaborID    string     `bson:"laborId" json:"laborId"`
	Note       string     `bson:"note" json:"note"`
	JobDate    *time.Time `bson:"jobDate,omitempty" json:"jobDate,omitempty"`

	Decision   Decision   `bson:"decision" json:"decision"`
	Status     Status     `bson:"status" json:"status"`
	WorkStatus WorkStatus `bson:"workStatus" json:"workStatus"`

	PaymentMethod *PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus *PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`

	AcceptedAt  *time.Time `bson:"acceptedAt" json:"acceptedAt"`
	DeclinedAt  *time.Time `bson:"declinedAt" json:"declinedAt"`
	CancelledAt *time.Time `bson:"cancelledAt" json:"cancelledAt"`
	CompletedAt *time.Time `bson:"completedAt" json:"completedAt"`
	PaidAt      *time.Time `bson:"paidAt" json:"paidAt"`

	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewBooking returns a booking in the initial requested state.
func NewBooking(id, customerID, laborID, note string, jobDate *time.Time, now time.Time) *Booking {
	return &Booking{
		ID:         id,
		CustomerID: customerID,
		LaborID:    laborID,
		Note:       note,
		JobDate:    jobDate,
		Decision:   DecisionRequested,
		Status:     DecisionToStatus(DecisionRequested),
		WorkStatus: WorkPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (b *Booking) Clone() *Booking {
	c := *b
	c.JobDate = cloneTime(b.JobDate)
	c.AcceptedAt = cloneTime(b.AcceptedAt)
	c.DeclinedAt = cloneTime(b.DeclinedAt)
	c.CancelledAt = cloneTime(b.CancelledAt)
	c.CompletedAt = cloneTime(b.CompletedAt)
	c.PaidAt = cloneTime(b.PaidAt)
	if b.PaymentMethod != nil {
		m := *b.PaymentMethod
		c.PaymentMethod = &m
	}
	if b.PaymentStatus != nil {
		s := *b.PaymentStatus
		c.PaymentStatus = &s
	}
	return &c
}

// SetDecision moves the booking to d and re-derives Status.
// The first arrival at accepted, declined or cancelled stamps the matching
// timestamp; later arrivals leave it untouched. Leaving accepted resets work
// progress.
func (b *Booking) SetDecision(d Decision, now time.Time) {
	b.Decision = d
	b.Status = DecisionToStatus(d)

	switch d {
	case DecisionAccepted:
		if b.AcceptedAt == nil {
			b.AcceptedAt = timePtr(now)
		}
		if b.WorkStatus == "" {
			b.WorkStatus = WorkPending
		}
	case DecisionDeclined:
		if b.DeclinedAt == nil {
			b.DeclinedAt = timePtr(now)
		}
	case DecisionCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = timePtr(now)
		}
	}

	if d != DecisionAccepted {
		b.WorkStatus = WorkPending
		b.CompletedAt = nil
	}
	b.UpdatedAt = now
}

// SetWorkStatus records job progress. It reports whether the booking moved
// from pending to done, the only transition that notifies the customer.
func (b *Booking) SetWorkStatus(ws WorkStatus, now time.Time) (completed bool) {
	prev := b.WorkStatus
	b.WorkStatus = ws

	switch ws {
	case WorkDone:
		if b.CompletedAt == nil {
			b.CompletedAt = timePtr(now)
		}
	case WorkPending:
		b.CompletedAt = nil
	}
	b.UpdatedAt = now
	return ws == WorkDone && prev != WorkDone
}

// SetPayment records the payment method and settlement state. paidAt follows
// the status: set once on paid, cleared on pending or nil.
func (b *Booking) SetPayment(method PaymentMethod, status PaymentStatus, now time.Time) {
	m := method
	s := status
	b.PaymentMethod = &m
	b.PaymentStatus = &s

	if s == PaymentPaid {
		if b.PaidAt == nil {
			b.PaidAt = timePtr(now)
		}
	} else {
		b.PaidAt = nil
	}
	b.UpdatedAt = now
}

// IsPaid reports whether the booking has been settled.
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus != nil && *b.PaymentStatus == PaymentPaid
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// BookingCounts holds booking totals keyed by decision.
type BookingCounts map[Decision]int64

// NewBookingCounts returns counts with every decision present at zero.
func NewBookingCounts() BookingCounts {
	counts := make(BookingCounts, len(Decisions))
	for _, d := range Decisions {
		counts[d] = 0
	}
	return counts
}

// BookingSummary backs the customer and labor dashboards.
type BookingSummary struct {
	Counts              BookingCounts `json:"counts"`
	Recent              []Booking     `json:"recent"`
	UnreadNotifications int64         `json:"unreadNotifications"`
}

// AdminStats holds platform-wide booking aggregates.
type AdminStats struct {
	ByDecision      BookingCounts    `json:"byDecision"`
	ByPaymentStatus map[string]int64 `json:"byPaymentStatus"`
}
