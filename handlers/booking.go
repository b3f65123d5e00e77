package handlers

import (
	"net/http"

	"laborlink/middleware"
	"laborlink/services/booking"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.KindInvalidInput, "Invalid request body")
		return
	}

	b, err := h.Service.Create(c.Request.Context(), customerID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking request created", "booking": b})
}

// ListCustomerBookingsHandler handles GET /bookings.
func (h *BookingHandler) ListCustomerBookingsHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)
	bookings, err := h.Service.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingHandler handles GET /bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)
	b, err := h.Service.GetForCustomer(c.Request.Context(), c.Param("id"), customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListLaborBookingsHandler handles GET /bookings/labor?status=.
func (h *BookingHandler) ListLaborBookingsHandler(c *gin.Context) {
	laborID, _ := middleware.CurrentIdentity(c)
	bookings, err := h.Service.ListForLabor(c.Request.Context(), laborID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AcceptBookingHandler handles PUT /bookings/:id/accept.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	laborID, _ := middleware.CurrentIdentity(c)
	b, err := h.Service.Accept(c.Request.Context(), c.Param("id"), laborID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking accepted", zap.String("bookingId", b.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Booking accepted", "booking": b})
}

// RejectBookingHandler handles PUT /bookings/:id/reject.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	laborID, _ := middleware.CurrentIdentity(c)
	b, err := h.Service.Decline(c.Request.Context(), c.Param("id"), laborID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking rejected", zap.String("bookingId", b.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Booking rejected", "booking": b})
}

// UpdateStatusHandler handles PUT /bookings/:id/status. The body carries
// either {status: accepted|rejected} or {workStatus: pending|done}.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	laborID, _ := middleware.CurrentIdentity(c)

	var input booking.StatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.KindInvalidInput, "Invalid request body")
		return
	}

	b, err := h.Service.ApplyStatusUpdate(c.Request.Context(), c.Param("id"), laborID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Work status updated"
	if input.WorkStatus == "" {
		message = "Booking " + string(b.Status)
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "booking": b})
}

// SummaryHandler handles GET /bookings/summary and /bookings/labor/summary.
func (h *BookingHandler) SummaryHandler(c *gin.Context) {
	userID, role := middleware.CurrentIdentity(c)
	summary, err := h.Service.Summary(c.Request.Context(), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
