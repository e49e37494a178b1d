package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

type availabilityHandler struct {
	availabilityService portssvc.AvailabilitySvc
	location            *time.Location
}

func newAvailabilityHandler(as portssvc.AvailabilitySvc, location *time.Location) *availabilityHandler {
	return &availabilityHandler{availabilityService: as, location: location}
}

func registerAvailabilityRoutes(rg *gin.RouterGroup, as portssvc.AvailabilitySvc, location *time.Location) {
	if location == nil {
		location = time.UTC
	}
	h := newAvailabilityHandler(as, location)
	rg.GET("/doctors/:doctorID/availability", h.getAvailability)
}

// getAvailability godoc
// @Summary List a doctor's open time
// @Description Returns the open intervals between two clinic-local dates, both inclusive
// @Tags availability
// @Produce json
// @Param doctorID path string true "Doctor ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /doctors/{doctorID}/availability [get]
func (h *availabilityHandler) getAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	doctorID := c.Param("doctorID")

	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}
	// Binding already checked the date layout.
	from, _ := time.ParseInLocation(time.DateOnly, query.From, h.location)
	lastDay, _ := time.ParseInLocation(time.DateOnly, query.To, h.location)
	to := lastDay.AddDate(0, 0, 1)

	logger = logger.With(slog.String("doctor_id", doctorID))
	slots, err := h.availabilityService.OpenSlots(c.Request.Context(), doctorID, from, to)
	if err != nil {
		respondError(c, logger, err, "compute availability")
		return
	}

	resp := dto.AvailabilityResponse{DoctorID: doctorID, Slots: []dto.SlotResponse{}}
	for iv := range slots {
		resp.Slots = append(resp.Slots, dto.SlotResponse{Start: iv.Start, End: iv.End})
	}
	c.JSON(http.StatusOK, resp)
}
