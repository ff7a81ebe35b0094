package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spritz/models"
	"spritz/utils"
)

// GetWindowsHandler handles GET /api/scheduling/windows/:address (public:
// guests need a host's configured windows to render a booking UI).
func (h *SchedulingHandler) GetWindowsHandler(c *gin.Context) {
	host, err := utils.ChecksumAddress(c.Param("address"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid address", "address must be a 0x-prefixed wallet address")
		return
	}

	windows, err := h.Service.GetWindows(c.Request.Context(), host)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability windows", err.Error())
		return
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}

	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// SetWindowsHandler handles PUT /api/scheduling/windows, replacing the
// authenticated host's full window set.
func (h *SchedulingHandler) SetWindowsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	host := callerAddress(c)
	if host == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.SetWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid window setup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	windows, err := h.Service.SetWindows(c.Request.Context(), host, req)
	if err != nil {
		status := statusForSchedulingError(err)
		c.JSON(status, gin.H{"error": "Failed to set availability windows", "message": err.Error()})
		return
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Availability windows updated",
		"windows": windows,
	})
}

// DeleteWindowHandler handles DELETE /api/scheduling/windows/:windowID for
// the authenticated host.
func (h *SchedulingHandler) DeleteWindowHandler(c *gin.Context) {
	host := callerAddress(c)
	if host == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	windowID := c.Param("windowID")
	if windowID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing window ID in path"})
		return
	}

	if err := h.Service.DeleteWindow(c.Request.Context(), host, windowID); err != nil {
		status := statusForSchedulingError(err)
		c.JSON(status, gin.H{"error": "Failed to delete availability window", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability window deleted"})
}

// GetProfileHandler handles GET /api/scheduling/profile for the
// authenticated host.
func (h *SchedulingHandler) GetProfileHandler(c *gin.Context) {
	host := callerAddress(c)
	if host == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.Service.GetProfile(c.Request.Context(), host)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch scheduling profile", err.Error())
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"profile": nil, "message": "Scheduling has not been configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfileHandler handles PUT /api/scheduling/profile.
func (h *SchedulingHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	host := callerAddress(c)
	if host == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var profile models.SchedulingProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	profile.UserAddress = host

	if err := h.Service.UpdateProfile(c.Request.Context(), profile); err != nil {
		status := statusForSchedulingError(err)
		c.JSON(status, gin.H{"error": "Failed to update scheduling profile", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scheduling profile updated"})
}

// callerAddress returns the wallet address set by SessionAuthMiddleware.
func callerAddress(c *gin.Context) string {
	v, exists := c.Get("userAddress")
	if !exists {
		return ""
	}
	address, _ := v.(string)
	return address
}
