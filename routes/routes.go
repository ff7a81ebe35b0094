package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"spritz/handlers"
	"spritz/middleware"
)

// RegisterSchedulingRoutes registers availability and host configuration endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		// Public endpoints: guests query a host's availability without a session.
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.GET("/windows/:address", hb.GetWindowsHandler)

		// Host configuration requires authentication.
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.PUT("/windows", hb.SetWindowsHandler)
		protected.DELETE("/windows/:windowID", hb.DeleteWindowHandler)
		protected.GET("/profile", hb.GetProfileHandler)
		protected.PUT("/profile", hb.UpdateProfileHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking session flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.SessionAuthMiddleware())
		bookingGroup.POST("/session", hb.InitiateSession)
		bookingGroup.POST("/confirm", hb.ConfirmBooking)
		bookingGroup.DELETE("/:bookingID", hb.CancelBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Spritz scheduling"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
