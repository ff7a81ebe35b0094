package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spritz/models"
	"spritz/services/scheduling"
	"spritz/utils"
)

// BookingHandler drives the guest booking session flow.
type BookingHandler struct {
	Service scheduling.BookingSessionService
	logger  *zap.Logger
}

func NewBookingHandler(service scheduling.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, logger: logger}
}

// InitiateSession handles POST /api/bookings/session.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	guest := callerAddress(c)
	if guest == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input models.BookingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.InitiateSession(c.Request.Context(), guest, input)
	if err != nil {
		status := statusForSchedulingError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to initiate booking session", zap.Error(err))
		}
		c.JSON(status, gin.H{"error": "failed to initiate booking session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ConfirmBooking handles POST /api/bookings/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	guest := callerAddress(c)
	if guest == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Service.ConfirmBooking(c.Request.Context(), guest, input.SessionID)
	if err != nil {
		status := statusForSchedulingError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to confirm booking", zap.String("session", input.SessionID), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": "failed to confirm booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking handles DELETE /api/bookings/:bookingID.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	caller := callerAddress(c)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bookingID := c.Param("bookingID")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing booking ID in path"})
		return
	}

	if err := h.Service.CancelBooking(c.Request.Context(), caller, bookingID); err != nil {
		status := statusForSchedulingError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to cancel booking", zap.String("booking", bookingID), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": "failed to cancel booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// statusForSchedulingError maps typed scheduling errors onto HTTP statuses.
func statusForSchedulingError(err error) int {
	var schedErr *scheduling.SchedulingError
	if errors.As(err, &schedErr) {
		switch schedErr.Code {
		case "validationError":
			return http.StatusBadRequest
		case "notFound":
			return http.StatusNotFound
		case "slotConflict":
			return http.StatusConflict
		}
	}
	if errors.Is(err, utils.ErrInvalidAddress) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
