package handlers

import (
	"net/http"
	"strings"

	"laborlink/middleware"
	"laborlink/services/notification"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notifications in their token role.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListHandler handles GET /notifications?unread=true.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	userID, role := middleware.CurrentIdentity(c)
	unreadOnly := strings.EqualFold(c.Query("unread"), "true")

	items, err := h.Service.ListFor(c.Request.Context(), userID, role, unreadOnly)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// MarkReadHandler handles PUT /notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	userID, role := middleware.CurrentIdentity(c)
	n, err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read", "notification": n})
}

// MarkAllReadHandler handles PUT /notifications/read-all.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	userID, role := middleware.CurrentIdentity(c)
	count, err := h.Service.MarkAllRead(c.Request.Context(), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "modifiedCount": count})
}
