package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// appointmentHandler handles HTTP requests related to appointments.
type appointmentHandler struct {
	appointmentService  portssvc.AppointmentSvcFacade
	bookingService      portssvc.BookingSvc
	cancellationService portssvc.CancellationSvc
}

func newAppointmentHandler(as portssvc.AppointmentSvcFacade, bs portssvc.BookingSvc, cs portssvc.CancellationSvc) *appointmentHandler {
	return &appointmentHandler{
		appointmentService:  as,
		bookingService:      bs,
		cancellationService: cs,
	}
}

// registerAppointmentRoutes registers routes related to appointments.
func registerAppointmentRoutes(rg *gin.RouterGroup, as portssvc.AppointmentSvcFacade, bs portssvc.BookingSvc, cs portssvc.CancellationSvc) {
	h := newAppointmentHandler(as, bs, cs)

	appointments := rg.Group("/appointments")
	{
		appointments.POST("", middleware.RequireRole(domain.RolePatient), h.bookAppointment)
		appointments.GET("/:appointmentID", h.getAppointment)
		appointments.GET("/:appointmentID/history", h.getHistory)
		appointments.POST("/:appointmentID/cancel", h.cancelAppointment)
		appointments.POST("/:appointmentID/transitions", middleware.RequireRole(domain.RoleDoctor, domain.RoleAdmin), h.transitionAppointment)
	}
}

// bookAppointment godoc
// @Summary Book an appointment
// @Description Reserves the slot and debits the patient's wallet in one step
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body dto.BookAppointmentRequest true "Slot to book"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse "Insufficient balance"
// @Failure 409 {object} dto.ErrorResponse "Slot unavailable"
// @Security BearerAuth
// @Router /appointments [post]
func (h *appointmentHandler) bookAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	patientID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to book appointment",
		slog.String("doctor_id", req.DoctorID),
		slog.Time("start_time", req.StartTime),
		slog.Time("end_time", req.EndTime))

	appt, err := h.bookingService.Book(c.Request.Context(), patientID, req)
	if err != nil {
		respondError(c, logger, err, "book appointment")
		return
	}

	logger.Info("Appointment booked", slog.String("appointment_id", appt.AppointmentID))
	c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appt))
}

// getAppointment godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /appointments/{appointmentID} [get]
func (h *appointmentHandler) getAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, role, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")
	logger = logger.With(slog.String("appointment_id", appointmentID))

	appt, err := h.appointmentService.GetAppointment(c.Request.Context(), appointmentID, userID, role)
	if err != nil {
		respondError(c, logger, err, "get appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// getHistory godoc
// @Summary Get an appointment's status history
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Success 200 {array} dto.StatusEventResponse
// @Security BearerAuth
// @Router /appointments/{appointmentID}/history [get]
func (h *appointmentHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, role, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")
	logger = logger.With(slog.String("appointment_id", appointmentID))

	events, err := h.appointmentService.GetHistory(c.Request.Context(), appointmentID, userID, role)
	if err != nil {
		respondError(c, logger, err, "get appointment history")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatusEventResponses(events))
}

// cancelAppointment godoc
// @Summary Cancel an appointment
// @Description Cancels the appointment and refunds a paid booking per policy
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Param body body dto.CancelAppointmentRequest false "Reason"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Failure 422 {object} dto.ErrorResponse "Cancellation window closed"
// @Security BearerAuth
// @Router /appointments/{appointmentID}/cancel [post]
func (h *appointmentHandler) cancelAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelAppointmentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}

	userID, role, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")
	logger = logger.With(slog.String("appointment_id", appointmentID))
	logger.Info("Received request to cancel appointment")

	appt, err := h.cancellationService.Cancel(c.Request.Context(), appointmentID, role, userID, req.Reason)
	if err != nil {
		respondError(c, logger, err, "cancel appointment")
		return
	}

	logger.Info("Appointment cancelled",
		slog.String("status", string(appt.Status)),
		slog.String("refund_amount", appt.RefundAmount.String()))
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// transitionAppointment godoc
// @Summary Move an appointment to its next status
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Param body body dto.TransitionAppointmentRequest true "Target status"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /appointments/{appointmentID}/transitions [post]
func (h *appointmentHandler) transitionAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, role, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentID")
	logger = logger.With(slog.String("appointment_id", appointmentID), slog.String("target_status", string(req.Status)))

	appt, err := h.appointmentService.Transition(c.Request.Context(), appointmentID, req.Status, userID, role, req.Reason)
	if err != nil {
		respondError(c, logger, err, "transition appointment")
		return
	}

	logger.Info("Appointment status changed")
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}
