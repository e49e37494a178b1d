package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes the maintenance operations the scheduler also runs.
type adminHandler struct {
	statsService   portssvc.DoctorStatsSvc
	auditorService portssvc.LedgerAuditorSvc
}

func registerAdminRoutes(admin *gin.RouterGroup, ss portssvc.DoctorStatsSvc, as portssvc.LedgerAuditorSvc) {
	h := &adminHandler{statsService: ss, auditorService: as}

	admin.POST("/doctors/stats/recompute", h.recomputeAllStats)
	admin.POST("/doctors/:doctorID/stats/recompute", h.recomputeDoctorStats)
	admin.GET("/wallets/:walletID/verify", h.verifyWallet)
}

func (h *adminHandler) recomputeDoctorStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	doctorID := c.Param("doctorID")
	logger = logger.With(slog.String("doctor_id", doctorID))

	stats, err := h.statsService.RecomputeDoctorStats(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, logger, err, "recompute doctor stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *adminHandler) recomputeAllStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updated, err := h.statsService.RecomputeAll(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "recompute all doctor stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// verifyWallet reports whether the wallet's ledger chain is consistent. A
// broken chain is a finding, not a request error.
func (h *adminHandler) verifyWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")
	logger = logger.With(slog.String("wallet_id", walletID))

	err := h.auditorService.VerifyChain(c.Request.Context(), walletID)
	var chainBreak *domain.ChainBreak
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"walletID": walletID, "consistent": true})
	case errors.As(err, &chainBreak):
		logger.Error("Ledger chain inconsistent", slog.String("error", chainBreak.Error()))
		c.JSON(http.StatusOK, gin.H{"walletID": walletID, "consistent": false, "index": chainBreak.Index, "reason": chainBreak.Reason})
	default:
		respondError(c, logger, err, "verify wallet ledger")
	}
}
