package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotsmith/handlers"
	"slotsmith/middleware"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Slots   *handlers.SlotsHandler
	Admin   *handlers.AdminHandler
	Booking *handlers.BookingHandler
}

// RegisterSlotRoutes registers the public slot query endpoint.
func RegisterSlotRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/slots", hb.Slots.GetSlots)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.DELETE("/:id", hb.Booking.CancelBooking)
	}
}

// RegisterAdminRoutes registers availability configuration endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.GET("/rules", hb.Admin.ListRules)
		admin.POST("/rules", hb.Admin.CreateRule)
		admin.PUT("/rules/:id", hb.Admin.UpdateRule)
		admin.DELETE("/rules/:id", hb.Admin.DeleteRule)

		admin.GET("/blocked", hb.Admin.ListBlocked)
		admin.POST("/blocked", hb.Admin.CreateBlocked)
		admin.DELETE("/blocked/:id", hb.Admin.DeleteBlocked)

		admin.GET("/types", hb.Admin.ListTypes)
		admin.POST("/types", hb.Admin.CreateType)
		admin.PUT("/types/:id", hb.Admin.UpdateType)
		admin.DELETE("/types/:id", hb.Admin.DeleteType)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterSlotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
