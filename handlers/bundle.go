package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle assembles every route handler the router needs.
type HandlerBundle struct {
	// Availability and host configuration.
	GetAvailabilityHandler gin.HandlerFunc
	GetWindowsHandler      gin.HandlerFunc
	SetWindowsHandler      gin.HandlerFunc
	DeleteWindowHandler    gin.HandlerFunc
	GetProfileHandler      gin.HandlerFunc
	UpdateProfileHandler   gin.HandlerFunc

	// Booking session flow.
	InitiateSession gin.HandlerFunc
	ConfirmBooking  gin.HandlerFunc
	CancelBooking   gin.HandlerFunc
}
