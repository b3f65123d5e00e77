package handlers

import (
	"net/http"

	"laborlink/middleware"
	"laborlink/services/payment"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment sub-workflow.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// PaymentChoiceHandler handles POST /bookings/:id/payment-choice.
func (h *PaymentHandler) PaymentChoiceHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)

	var input struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.KindInvalidInput, "Invalid request body")
		return
	}

	b, err := h.Service.ChoosePaymentMethod(c.Request.Context(), c.Param("id"), customerID, input.Method)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method set to " + string(*b.PaymentMethod),
		"booking": b,
	})
}

// StartSessionHandler handles POST /payments/start.
func (h *PaymentHandler) StartSessionHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)

	var input struct {
		BookingID string `json:"bookingId"`
		Provider  string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.KindInvalidInput, "Invalid request body")
		return
	}

	session, err := h.Service.StartCardSession(c.Request.Context(), input.BookingID, customerID, input.Provider)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ChargeHandler handles POST /payments/charge.
func (h *PaymentHandler) ChargeHandler(c *gin.Context) {
	customerID, _ := middleware.CurrentIdentity(c)

	var input payment.ChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.KindInvalidInput, "Invalid request body")
		return
	}
	input.CustomerID = customerID

	b, err := h.Service.ChargeCard(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Payment successful", zap.String("bookingId", b.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "booking": b})
}
