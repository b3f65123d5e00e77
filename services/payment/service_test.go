package payment

import (
	"context"
	"testing"
	"time"

	bookingRepo "laborlink/database/repository/booking"
	directoryRepo "laborlink/database/repository/directory"
	notificationRepo "laborlink/database/repository/notification"
	"laborlink/models"
	"laborlink/services/booking"
	"laborlink/services/notification"
	"laborlink/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerID   = "c0000000-0000-4000-8000-000000000001"
	otherCustID  = "c0000000-0000-4000-8000-000000000002"
	laborID      = "10000000-0000-4000-8000-000000000001"
	noRateLabor  = "10000000-0000-4000-8000-000000000002"
	approvedCard = "4242 4242 4242 4242"
	declinedCard = "4000 0000 0000 0002"
)

type fixture struct {
	svc      *DefaultPaymentService
	bookings *bookingRepo.MemoryBookingRepo
	notes    *notificationRepo.MemoryNotificationRepo
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings: bookingRepo.NewMemoryBookingRepo(),
		notes:    notificationRepo.NewMemoryNotificationRepo(),
		now:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	dir := directoryRepo.NewMemoryDirectory()
	rate := 1500.0
	dir.PutLabor(models.Labor{ID: laborID, Name: "Nimal", SkillCategory: "Plumber", DailyRate: &rate, IsActive: true})
	dir.PutLabor(models.Labor{ID: noRateLabor, Name: "Ruwan", SkillCategory: "Carpenter", IsActive: true})
	dir.PutCustomer(models.Customer{ID: customerID, Name: "Dilini", Phone: "+94771234567", Email: "dilini@example.com", Address: "12 Galle Road"})

	notifSvc, err := notification.NewDefaultNotificationService(f.notes)
	require.NoError(t, err)
	committer := booking.NewCommitter(f.bookings, notifSvc, notification.NewDispatcher(notifSvc, nil, nil), nil)

	f.svc, err = NewDefaultPaymentService(f.bookings, dir, committer, NewMockAuthorizer("4242"), nil, "lkr", nil)
	require.NoError(t, err)
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

// seed stores a booking for labor, accepted unless requested is set.
func (f *fixture) seed(t *testing.T, labor string, accepted bool) *models.Booking {
	t.Helper()
	b := models.NewBooking(uuid.NewString(), customerID, labor, "", nil, f.now)
	if accepted {
		b.SetDecision(models.DecisionAccepted, f.now)
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func card(number string) models.CardDetails {
	return models.CardDetails{Holder: "D Fernando", Number: number, ExpMonth: 12, ExpYear: 2030, CVC: "123"}
}

func TestChooseCash(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, laborID, true)

	got, err := f.svc.ChoosePaymentMethod(context.Background(), b.ID, customerID, "Cash")
	require.NoError(t, err)
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, models.PaymentCash, *got.PaymentMethod)
	assert.Equal(t, models.PaymentPending, *got.PaymentStatus)
	assert.Nil(t, got.PaidAt)

	notes := f.notes.All()
	require.Len(t, notes, 1)
	n := notes[0]
	assert.Equal(t, laborID, n.UserID)
	assert.Equal(t, models.RoleLabor, n.Role)
	assert.Equal(t, models.NotificationTypePayment, n.Type)
	assert.Equal(t, "Customer will pay in cash", n.Title)
	assert.Equal(t, "The customer selected CASH for this job (Rs. 1,500). Location: 12 Galle Road.", n.Message)
	assert.Equal(t, "Dilini", n.Meta["customerName"])
	assert.Equal(t, "+94771234567", n.Meta["customerPhone"])
	assert.Equal(t, "cash", n.Meta["paymentMethod"])
	assert.Equal(t, "pending", n.Meta["paymentStatus"])
	assert.Equal(t, "Plumber", n.Meta["skillCategory"])
}

func TestChooseCashWithoutRate(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, noRateLabor, true)

	_, err := f.svc.ChoosePaymentMethod(context.Background(), b.ID, customerID, "cash")
	require.NoError(t, err)

	notes := f.notes.All()
	require.Len(t, notes, 1)
	assert.Equal(t, "The customer selected CASH for this job. Location: 12 Galle Road.", notes[0].Message)
}

func TestChooseCardDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, laborID, true)

	got, err := f.svc.ChoosePaymentMethod(context.Background(), b.ID, customerID, "CARD")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCard, *got.PaymentMethod)
	assert.Equal(t, models.PaymentPending, *got.PaymentStatus)
	assert.Empty(t, f.notes.All())
}

func TestChooseValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accepted := f.seed(t, laborID, true)
	requested := f.seed(t, laborID, false)

	tests := []struct {
		name     string
		booking  string
		customer string
		method   string
		kind     utils.ErrorKind
	}{
		{"unknown method", accepted.ID, customerID, "cheque", utils.KindInvalidInput},
		{"empty method", accepted.ID, customerID, "", utils.KindInvalidInput},
		{"malformed id", "abc", customerID, "cash", utils.KindInvalidInput},
		{"other customer", accepted.ID, otherCustID, "cash", utils.KindNotFound},
		{"not accepted", requested.ID, customerID, "cash", utils.KindInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ChoosePaymentMethod(ctx, tt.booking, tt.customer, tt.method)
			assert.Equal(t, tt.kind, utils.KindOf(err))
		})
	}
	assert.Empty(t, f.notes.All())
}

func TestStartCardSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, laborID, true)

	session, err := f.svc.StartCardSession(ctx, b.ID, customerID, "")
	require.NoError(t, err)
	assert.Nil(t, session.URL)
	assert.Equal(t, "in-app", session.Provider)

	session, err = f.svc.StartCardSession(ctx, b.ID, customerID, "payhere")
	require.NoError(t, err)
	assert.Equal(t, "payhere", session.Provider)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PaymentMethod, "starting a session does not mutate")

	requested := f.seed(t, laborID, false)
	_, err = f.svc.StartCardSession(ctx, requested.ID, customerID, "")
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

type fakeStarter struct{ url string }

func (s fakeStarter) Name() string { return "stripe" }

func (s fakeStarter) StartSession(_ context.Context, _ *models.Booking, _ float64) (string, error) {
	return s.url, nil
}

func TestStartCardSessionHosted(t *testing.T) {
	f := newFixture(t)
	f.svc.WithSessionStarter(fakeStarter{url: "https://checkout.example/s/1"})
	b := f.seed(t, laborID, true)

	session, err := f.svc.StartCardSession(context.Background(), b.ID, customerID, "")
	require.NoError(t, err)
	require.NotNil(t, session.URL)
	assert.Equal(t, "https://checkout.example/s/1", *session.URL)
	assert.Equal(t, "stripe", session.Provider)
}

func TestChargeApproved(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, laborID, true)

	got, err := f.svc.ChargeCard(context.Background(), ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(approvedCard)})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCard, *got.PaymentMethod)
	assert.Equal(t, models.PaymentPaid, *got.PaymentStatus)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, f.now, *got.PaidAt)

	notes := f.notes.All()
	require.Len(t, notes, 1)
	n := notes[0]
	assert.Equal(t, laborID, n.UserID)
	assert.Equal(t, "Customer paid by card", n.Title)
	assert.Equal(t, "Payment received (Rs. 1,500). The job is ready to proceed. Location: 12 Galle Road.", n.Message)
	assert.Equal(t, 1500.0, n.Meta["amount"])
	assert.Equal(t, "paid", n.Meta["paymentStatus"])
}

func TestChargeExplicitAmount(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, noRateLabor, true)
	amount := 2750.5

	_, err := f.svc.ChargeCard(context.Background(), ChargeInput{BookingID: b.ID, CustomerID: customerID, Amount: &amount, Card: card(approvedCard)})
	require.NoError(t, err)

	notes := f.notes.All()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Rs. 2,750.50")
}

func TestChargeDeclinedLeavesBookingUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, laborID, true)

	_, err := f.svc.ChargeCard(ctx, ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(declinedCard)})
	assert.Equal(t, utils.KindPaymentDeclined, utils.KindOf(err))

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PaymentMethod)
	assert.Nil(t, stored.PaymentStatus)
	assert.Nil(t, stored.PaidAt)
	assert.Equal(t, b.Version, stored.Version)
	assert.Empty(t, f.notes.All())
}

func TestChargeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accepted := f.seed(t, laborID, true)
	requested := f.seed(t, laborID, false)
	noRate := f.seed(t, noRateLabor, true)
	zero := 0.0

	incomplete := card(approvedCard)
	incomplete.CVC = ""

	tests := []struct {
		name string
		in   ChargeInput
		kind utils.ErrorKind
	}{
		{"missing cvc", ChargeInput{BookingID: accepted.ID, CustomerID: customerID, Card: incomplete}, utils.KindInvalidInput},
		{"zero amount", ChargeInput{BookingID: accepted.ID, CustomerID: customerID, Amount: &zero, Card: card(approvedCard)}, utils.KindInvalidInput},
		{"no amount and no rate", ChargeInput{BookingID: noRate.ID, CustomerID: customerID, Card: card(approvedCard)}, utils.KindInvalidInput},
		{"not accepted", ChargeInput{BookingID: requested.ID, CustomerID: customerID, Card: card(approvedCard)}, utils.KindInvalidState},
		{"other customer", ChargeInput{BookingID: accepted.ID, CustomerID: otherCustID, Card: card(approvedCard)}, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ChargeCard(ctx, tt.in)
			assert.Equal(t, tt.kind, utils.KindOf(err))
		})
	}
	assert.Empty(t, f.notes.All())
}

func TestPaymentChoiceAfterCardPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, laborID, true)

	_, err := f.svc.ChargeCard(ctx, ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(approvedCard)})
	require.NoError(t, err)

	_, err = f.svc.ChargeCard(ctx, ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(approvedCard)})
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err), "a paid booking is not charged twice")

	session, err := f.svc.StartCardSession(ctx, b.ID, customerID, "")
	require.NoError(t, err)
	assert.Equal(t, "in-app", session.Provider)

	got, err := f.svc.ChoosePaymentMethod(ctx, b.ID, customerID, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCash, *got.PaymentMethod)
	assert.Equal(t, models.PaymentPaid, *got.PaymentStatus, "cash keeps the settled status")
	require.NotNil(t, got.PaidAt)

	got, err = f.svc.ChoosePaymentMethod(ctx, b.ID, customerID, "card")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCard, *got.PaymentMethod)
	assert.Equal(t, models.PaymentPending, *got.PaymentStatus)
	assert.Nil(t, got.PaidAt)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPaid())
	assert.Nil(t, stored.PaidAt)
}

func TestChoiceWaitsForChargeLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, laborID, true)

	release, ok, err := f.svc.Locker.Acquire(ctx, b.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.ChoosePaymentMethod(ctx, b.ID, customerID, "cash")
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PaymentMethod)
	assert.Equal(t, int64(0), stored.Version)

	release()
	_, err = f.svc.ChoosePaymentMethod(ctx, b.ID, customerID, "cash")
	assert.NoError(t, err)
}

func TestChargeLockConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(t, laborID, true)

	release, ok, err := f.svc.Locker.Acquire(ctx, b.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.ChargeCard(ctx, ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(approvedCard)})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	release()
	_, err = f.svc.ChargeCard(ctx, ChargeInput{BookingID: b.ID, CustomerID: customerID, Card: card(approvedCard)})
	assert.NoError(t, err)
}

func TestMockAuthorizer(t *testing.T) {
	a := NewMockAuthorizer("")
	tests := []struct {
		number string
		ok     bool
	}{
		{"4242424242424242", true},
		{"4242 4242 4242 4242", true},
		{"4242-4242-4242-4242", true},
		{"4000000000000002", false},
		{"4242", true},
		{"42424", false},
	}
	for _, tt := range tests {
		res, err := a.Authorize(context.Background(), models.ChargeRequest{Card: models.CardDetails{Number: tt.number}})
		require.NoError(t, err)
		assert.Equal(t, tt.ok, res.Approved, tt.number)
		if !tt.ok {
			assert.NotEmpty(t, res.Reason)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(150000), toMinorUnits(1500))
	assert.Equal(t, int64(275050), toMinorUnits(2750.5))
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
}
