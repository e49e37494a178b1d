package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentCallbackHandler struct {
	topUpService portssvc.TopUpSvc
}

// registerPaymentCallbackRoutes wires the gateway webhook. The route is
// public; authenticity comes from the payload signature.
func registerPaymentCallbackRoutes(rg *gin.RouterGroup, ts portssvc.TopUpSvc) {
	h := &paymentCallbackHandler{topUpService: ts}
	rg.POST("/callbacks/payments", h.handleCallback)
}

// handleCallback godoc
// @Summary Payment gateway webhook
// @Tags callbacks
// @Accept json
// @Produce json
// @Param body body dto.PaymentCallbackRequest true "Signed callback"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse "Bad signature or amount mismatch"
// @Router /callbacks/payments [post]
func (h *paymentCallbackHandler) handleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	logger = logger.With(slog.Int64("order_code", req.Data.OrderCode))

	order, err := h.topUpService.HandleCallback(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "handle payment callback")
		return
	}

	logger.Info("Payment callback processed", slog.String("status", string(order.Status)))
	c.JSON(http.StatusOK, gin.H{"success": true, "status": order.Status})
}
