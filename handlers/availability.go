package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spritz/models"
	"spritz/services/scheduling"
	"spritz/utils"
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 31
)

// SchedulingHandler serves availability queries and host window/profile
// management.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

func NewSchedulingHandler(service scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: service}
}

// GetAvailabilityHandler handles
// GET /api/scheduling/availability?userAddress=&startDate=&endDate=&kind=.
func (h *SchedulingHandler) GetAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	rawAddress := c.Query("userAddress")
	if rawAddress == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing userAddress", "userAddress query parameter is required")
		return
	}
	host, err := utils.ChecksumAddress(rawAddress)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid userAddress", "userAddress must be a 0x-prefixed wallet address")
		return
	}

	rng, err := parseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	kind := c.DefaultQuery("kind", models.BookingKindFree)
	if kind != models.BookingKindFree && kind != models.BookingKindPaid {
		utils.JSONError(c, http.StatusBadRequest, "Invalid kind", "kind must be \"free\" or \"paid\"")
		return
	}

	result, err := h.Service.GetAvailability(c.Request.Context(), host, rng, kind)
	if err != nil {
		logger.Error("availability computation failed", zap.String("host", host), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseDateRange interprets the startDate/endDate query parameters,
// defaulting to the seven days starting today.
func parseDateRange(startStr, endStr string) (models.DateRange, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	start := today
	if startStr != "" {
		var err error
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return models.DateRange{}, errors.New("startDate must be formatted YYYY-MM-DD")
		}
	}

	end := start.AddDate(0, 0, 6)
	if endStr != "" {
		var err error
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return models.DateRange{}, errors.New("endDate must be formatted YYYY-MM-DD")
		}
	}

	if end.Before(start) {
		return models.DateRange{}, errors.New("endDate must not be before startDate")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return models.DateRange{}, errors.New("date range may span at most 31 days")
	}
	return models.DateRange{Start: start, End: end}, nil
}
