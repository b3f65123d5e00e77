package routes

import (
	"time"

	"laborlink/handlers"
	"laborlink/middleware"
	"laborlink/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const apiRoot = "/api/laborlink"

// RegisterBookingRoutes sets up booking lifecycle and payment-choice endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		labor := bookings.Group("")
		labor.Use(middleware.RequireRole(models.RoleLabor))
		labor.GET("/labor", hb.Booking.ListLaborBookingsHandler)
		labor.GET("/labor/bookings", hb.Booking.ListLaborBookingsHandler)
		labor.GET("/labor/summary", hb.Booking.SummaryHandler)
		labor.PUT("/:id/accept", hb.Booking.AcceptBookingHandler)
		labor.PUT("/:id/reject", hb.Booking.RejectBookingHandler)
		labor.PUT("/:id/status", hb.Booking.UpdateStatusHandler)

		customer := bookings.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		customer.POST("", hb.Booking.CreateBookingHandler)
		customer.GET("", hb.Booking.ListCustomerBookingsHandler)
		customer.GET("/summary", hb.Booking.SummaryHandler)
		customer.GET("/:id", hb.Booking.GetBookingHandler)
		customer.POST("/:id/payment-choice", hb.Payment.PaymentChoiceHandler)
	}
}

// RegisterPaymentRoutes sets up card payment endpoints.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	payments := api.Group("/payments")
	payments.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleCustomer))
	{
		payments.POST("/start", hb.Payment.StartSessionHandler)
		payments.POST("/charge", hb.Payment.ChargeHandler)
	}
}

// RegisterNotificationRoutes sets up the customer and labor notification feeds.
func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	customer := api.Group("/notifications")
	customer.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("", hb.Notification.ListHandler)
		customer.PUT("/read-all", hb.Notification.MarkAllReadHandler)
		customer.PUT("/:id/read", hb.Notification.MarkReadHandler)
	}

	labor := api.Group("/labor/notifications")
	labor.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleLabor))
	{
		labor.GET("", hb.Notification.ListHandler)
		labor.PUT("/read-all", hb.Notification.MarkAllReadHandler)
		labor.PUT("/:id/read", hb.Notification.MarkReadHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.GET("/stats", hb.Admin.StatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r)

	api := r.Group(apiRoot)
	RegisterBookingRoutes(api, hb)
	RegisterPaymentRoutes(api, hb)
	RegisterNotificationRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
