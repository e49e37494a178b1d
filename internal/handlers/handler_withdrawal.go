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

type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func newWithdrawalHandler(ws portssvc.WithdrawalSvcFacade) *withdrawalHandler {
	return &withdrawalHandler{withdrawalService: ws}
}

// registerWithdrawalRoutes wires the owner endpoint on rg and the approver
// endpoints on admin.
func registerWithdrawalRoutes(rg, admin *gin.RouterGroup, ws portssvc.WithdrawalSvcFacade) {
	h := newWithdrawalHandler(ws)

	rg.POST("/withdrawals", h.requestWithdrawal)

	withdrawals := admin.Group("/withdrawals/:requestID")
	{
		withdrawals.POST("/approve", h.resolve(domain.DecisionApprove))
		withdrawals.POST("/reject", h.resolve(domain.DecisionReject))
		withdrawals.POST("/transfer-result", h.confirmTransfer)
	}
}

// requestWithdrawal godoc
// @Summary Request a payout
// @Description Earmarks the amount with a pending WITHDRAWAL entry
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param body body dto.CreateWithdrawalRequest true "Amount and destination"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	ownerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	wd, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, logger, err, "request withdrawal")
		return
	}

	logger.Info("Withdrawal requested", slog.String("request_id", wd.RequestID), slog.String("amount", wd.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(wd))
}

// resolve godoc
// @Summary Approve or reject a pending withdrawal
// @Tags admin
// @Accept json
// @Produce json
// @Param requestID path string true "Withdrawal request ID"
// @Param body body dto.ResolveWithdrawalRequest false "Note"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 409 {object} dto.ErrorResponse "Already resolved"
// @Security BearerAuth
// @Router /admin/withdrawals/{requestID}/approve [post]
// @Router /admin/withdrawals/{requestID}/reject [post]
func (h *withdrawalHandler) resolve(decision domain.WithdrawalDecision) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.ResolveWithdrawalRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondBindError(c, logger, err)
				return
			}
		}

		approverID, ok := requireCaller(c, logger)
		if !ok {
			return
		}
		requestID := c.Param("requestID")
		logger = logger.With(slog.String("request_id", requestID), slog.String("decision", string(decision)))

		wd, err := h.withdrawalService.Resolve(c.Request.Context(), requestID, decision, approverID, req.Note)
		if err != nil {
			respondError(c, logger, err, "resolve withdrawal")
			return
		}

		logger.Info("Withdrawal resolved", slog.String("status", string(wd.Status)))
		c.JSON(http.StatusOK, dto.ToWithdrawalResponse(wd))
	}
}

// confirmTransfer godoc
// @Summary Record the bank transfer outcome
// @Description Completes an approved withdrawal, or reverses it if the transfer failed
// @Tags admin
// @Accept json
// @Produce json
// @Param requestID path string true "Withdrawal request ID"
// @Param body body dto.TransferResultRequest true "Outcome"
// @Success 200 {object} dto.WithdrawalResponse
// @Security BearerAuth
// @Router /admin/withdrawals/{requestID}/transfer-result [post]
func (h *withdrawalHandler) confirmTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, ok := requireCaller(c, logger)
	if !ok {
		return
	}
	requestID := c.Param("requestID")
	logger = logger.With(slog.String("request_id", requestID), slog.Bool("success", *req.Success))

	wd, err := h.withdrawalService.ConfirmTransfer(c.Request.Context(), requestID, *req.Success, req.TransferRef, req.Note, actorID)
	if err != nil {
		respondError(c, logger, err, "confirm withdrawal transfer")
		return
	}

	logger.Info("Withdrawal transfer recorded", slog.String("status", string(wd.Status)))
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(wd))
}
