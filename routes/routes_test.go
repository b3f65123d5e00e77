package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "laborlink/database/repository/booking"
	directoryRepo "laborlink/database/repository/directory"
	notificationRepo "laborlink/database/repository/notification"
	"laborlink/handlers"
	"laborlink/models"
	"laborlink/services/booking"
	"laborlink/services/notification"
	"laborlink/services/payment"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testLaborID    = "a0000000-0000-4000-8000-000000000001"
	testCustomerID = "c0000000-0000-4000-8000-000000000001"
)

type apiFixture struct {
	t      *testing.T
	router *gin.Engine
	tokens map[models.Role]string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	bookings := bookingRepo.NewMemoryBookingRepo()
	dir := directoryRepo.NewMemoryDirectory()
	rate := 1500.0
	dir.PutLabor(models.Labor{ID: testLaborID, Name: "Nimal", SkillCategory: "Plumber", DailyRate: &rate, IsActive: true})
	dir.PutCustomer(models.Customer{ID: testCustomerID, Name: "Kamala", Address: "12 Temple Rd"})

	notifSvc, err := notification.NewDefaultNotificationService(notificationRepo.NewMemoryNotificationRepo())
	require.NoError(t, err)
	committer := booking.NewCommitter(bookings, notifSvc, notification.NewDispatcher(notifSvc, nil, logger), nil)

	bookingSvc, err := booking.NewDefaultBookingService(bookings, dir, notifSvc, committer, logger)
	require.NoError(t, err)
	paymentSvc, err := payment.NewDefaultPaymentService(bookings, dir, committer, payment.NewMockAuthorizer(""), nil, "lkr", logger)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingSvc),
		Payment:      handlers.NewPaymentHandler(paymentSvc),
		Notification: handlers.NewNotificationHandler(notifSvc),
		Admin:        handlers.NewAdminHandler(bookingSvc),
	}, 1000)

	tokens := make(map[models.Role]string)
	for role, sub := range map[models.Role]string{
		models.RoleCustomer: testCustomerID,
		models.RoleLabor:    testLaborID,
		models.RoleAdmin:    "admin",
	} {
		tok, err := utils.GenerateToken(sub, string(role), time.Hour)
		require.NoError(t, err)
		tokens[role] = tok
	}
	return &apiFixture{t: t, router: r, tokens: tokens}
}

func (f *apiFixture) do(role models.Role, method, path string, body any) (int, map[string]any) {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, apiRoot+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+f.tokens[role])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (f *apiFixture) createBooking() string {
	f.t.Helper()
	code, body := f.do(models.RoleCustomer, http.MethodPost, "/bookings", gin.H{"laborId": testLaborID, "note": "leaking tap"})
	require.Equal(f.t, http.StatusCreated, code, body)
	assert.Equal(f.t, "Booking request created", body["message"])
	b := body["booking"].(map[string]any)
	assert.Equal(f.t, "requested", b["decision"])
	assert.Equal(f.t, "pending", b["status"])
	return b["id"].(string)
}

func TestBookingPaymentNotificationFlow(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createBooking()

	code, body := f.do(models.RoleLabor, http.MethodGet, "/bookings/labor", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["bookings"], 1)

	code, body = f.do(models.RoleLabor, http.MethodPut, "/bookings/"+id+"/accept", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Booking accepted", body["message"])
	assert.Equal(t, "accepted", body["booking"].(map[string]any)["status"])

	code, body = f.do(models.RoleLabor, http.MethodPut, "/bookings/"+id+"/accept", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidState", body["error"])

	code, body = f.do(models.RoleCustomer, http.MethodGet, "/notifications?unread=true", nil)
	require.Equal(t, http.StatusOK, code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	note := items[0].(map[string]any)
	assert.Equal(t, "Booking Accepted", note["title"])
	assert.Equal(t, "Plumber Nimal accepted your booking request.", note["message"])

	code, body = f.do(models.RoleCustomer, http.MethodPut, "/notifications/"+note["id"].(string)+"/read", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Marked as read", body["message"])

	code, body = f.do(models.RoleCustomer, http.MethodPost, "/payments/start", gin.H{"bookingId": id})
	require.Equal(t, http.StatusOK, code, body)
	assert.Nil(t, body["url"])
	assert.Equal(t, "in-app", body["provider"])

	card := gin.H{"holder": "Kamala", "number": "4000 0000 0000 0002", "expMonth": 12, "expYear": 2030, "cvc": "123"}
	code, body = f.do(models.RoleCustomer, http.MethodPost, "/payments/charge", gin.H{"bookingId": id, "card": card})
	assert.Equal(t, http.StatusPaymentRequired, code, body)
	assert.Equal(t, "PaymentDeclined", body["error"])

	card["number"] = "4242 4242 4242 4242"
	code, body = f.do(models.RoleCustomer, http.MethodPost, "/payments/charge", gin.H{"bookingId": id, "card": card})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Payment successful", body["message"])
	b := body["booking"].(map[string]any)
	assert.Equal(t, "card", b["paymentMethod"])
	assert.Equal(t, "paid", b["paymentStatus"])

	code, body = f.do(models.RoleCustomer, http.MethodPost, "/payments/charge", gin.H{"bookingId": id, "card": card})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Booking is already paid", body["message"])

	code, body = f.do(models.RoleCustomer, http.MethodPost, "/bookings/"+id+"/payment-choice", gin.H{"method": "cash"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Payment method set to cash", body["message"])
	assert.Equal(t, "paid", body["booking"].(map[string]any)["paymentStatus"])

	code, body = f.do(models.RoleLabor, http.MethodGet, "/labor/notifications", nil)
	require.Equal(t, http.StatusOK, code)
	laborItems := body["items"].([]any)
	require.Len(t, laborItems, 2)
	titles := []any{laborItems[0].(map[string]any)["title"], laborItems[1].(map[string]any)["title"]}
	assert.ElementsMatch(t, []any{"Customer paid by card", "Customer will pay in cash"}, titles)

	code, body = f.do(models.RoleLabor, http.MethodPut, "/labor/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["modifiedCount"])

	code, body = f.do(models.RoleLabor, http.MethodPut, "/bookings/"+id+"/status", gin.H{"workStatus": "done"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "done", body["booking"].(map[string]any)["workStatus"])

	code, body = f.do(models.RoleCustomer, http.MethodGet, "/bookings/summary", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["unreadNotifications"])
}

func TestDeclineAndCashChoice(t *testing.T) {
	f := newAPIFixture(t)
	declined := f.createBooking()
	other := f.createBooking()

	code, body := f.do(models.RoleLabor, http.MethodPut, "/bookings/"+declined+"/status", gin.H{"status": "rejected"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Booking rejected", body["message"])

	code, _ = f.do(models.RoleLabor, http.MethodPut, "/bookings/"+other+"/reject", nil)
	require.Equal(t, http.StatusOK, code)

	code, body = f.do(models.RoleLabor, http.MethodGet, "/bookings/labor?status=rejected", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["bookings"], 2)

	code, body = f.do(models.RoleCustomer, http.MethodPost, "/bookings/"+declined+"/payment-choice", gin.H{"method": "cash"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidState", body["error"])
}

func TestAccessControl(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createBooking()

	code, _ := f.do("", http.MethodGet, "/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(models.RoleLabor, http.MethodPost, "/bookings", gin.H{"laborId": testLaborID})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(models.RoleCustomer, http.MethodPut, "/bookings/"+id+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(models.RoleCustomer, http.MethodGet, "/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := f.do(models.RoleAdmin, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, code, body)

	code, _ = f.do(models.RoleCustomer, http.MethodGet, "/bookings/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
