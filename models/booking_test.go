package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionStatusMapping(t *testing.T) {
	tests := []struct {
		decision Decision
		status   Status
	}{
		{DecisionRequested, StatusPending},
		{DecisionAccepted, StatusAccepted},
		{DecisionDeclined, StatusRejected},
		{DecisionCancelled, StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			assert.Equal(t, tt.status, DecisionToStatus(tt.decision))
			assert.Equal(t, tt.decision, StatusToDecision(tt.status))
		})
	}
}

func TestNewBookingDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	b := NewBooking("b1", "c1", "l1", "fix sink", nil, now)

	assert.Equal(t, DecisionRequested, b.Decision)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, WorkPending, b.WorkStatus)
	assert.Nil(t, b.PaymentMethod)
	assert.Nil(t, b.PaymentStatus)
	assert.Nil(t, b.AcceptedAt)
	assert.Equal(t, now, b.CreatedAt)
}

func TestSetDecisionTimestampsAreSetOnce(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	b := NewBooking("b1", "c1", "l1", "", nil, t1)
	b.SetDecision(DecisionAccepted, t1)
	require.NotNil(t, b.AcceptedAt)
	assert.Equal(t, StatusAccepted, b.Status)

	b.SetWorkStatus(WorkDone, t2)
	require.NotNil(t, b.CompletedAt)

	b.SetDecision(DecisionDeclined, t2)
	assert.Equal(t, StatusRejected, b.Status)
	assert.Equal(t, WorkPending, b.WorkStatus)
	assert.Nil(t, b.CompletedAt)
	require.NotNil(t, b.DeclinedAt)
	assert.Equal(t, t2, *b.DeclinedAt)

	b.SetDecision(DecisionAccepted, t3)
	assert.Equal(t, t1, *b.AcceptedAt)

	b.SetDecision(DecisionDeclined, t3)
	assert.Equal(t, t2, *b.DeclinedAt)

	b.SetDecision(DecisionCancelled, t3)
	assert.Equal(t, StatusCancelled, b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, t3, *b.CancelledAt)
}

func TestSetWorkStatus(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	b := NewBooking("b1", "c1", "l1", "", nil, t1)
	b.SetDecision(DecisionAccepted, t1)

	assert.True(t, b.SetWorkStatus(WorkDone, t1))
	assert.Equal(t, t1, *b.CompletedAt)

	assert.False(t, b.SetWorkStatus(WorkDone, t2), "repeating done is not a completion")
	assert.Equal(t, t1, *b.CompletedAt)

	assert.False(t, b.SetWorkStatus(WorkPending, t2))
	assert.Nil(t, b.CompletedAt)
}

func TestSetPayment(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	b := NewBooking("b1", "c1", "l1", "", nil, t1)
	b.SetPayment(PaymentCash, PaymentPending, t1)
	assert.Nil(t, b.PaidAt)
	assert.False(t, b.IsPaid())

	b.SetPayment(PaymentCard, PaymentPaid, t1)
	require.NotNil(t, b.PaidAt)
	assert.True(t, b.IsPaid())

	b.SetPayment(PaymentCard, PaymentPaid, t2)
	assert.Equal(t, t1, *b.PaidAt)

	b.SetPayment(PaymentCard, PaymentPending, t2)
	assert.Nil(t, b.PaidAt)
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	b := NewBooking("b1", "c1", "l1", "", &now, now)
	b.SetPayment(PaymentCash, PaymentPending, now)

	c := b.Clone()
	*c.PaymentMethod = PaymentCard
	*c.JobDate = now.Add(time.Hour)

	assert.Equal(t, PaymentCash, *b.PaymentMethod)
	assert.Equal(t, now, *b.JobDate)
}

func TestParseHelpers(t *testing.T) {
	_, ok := ParseStatus("declined")
	assert.False(t, ok, "declined is a decision, not a status")

	st, ok := ParseStatus("rejected")
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, st)

	_, ok = ParseWorkStatus("started")
	assert.False(t, ok)

	_, ok = ParsePaymentMethod("CASH")
	assert.False(t, ok, "callers lowercase before parsing")
}
