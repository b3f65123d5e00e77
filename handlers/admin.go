package handlers

import (
	"net/http"

	"laborlink/services/booking"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates platform-wide read operations.
type AdminHandler struct {
	BookingService booking.BookingService
}

func NewAdminHandler(bs booking.BookingService) *AdminHandler {
	return &AdminHandler{BookingService: bs}
}

// StatsHandler handles GET /admin/stats.
func (ah *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := ah.BookingService.AdminStats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthHandler handles GET /health with the last dependency snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
}
