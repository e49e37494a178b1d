package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler serves the caller's own wallet.
type walletHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	topUpService  portssvc.TopUpSvc
}

func newWalletHandler(ls portssvc.LedgerSvcFacade, ts portssvc.TopUpSvc) *walletHandler {
	return &walletHandler{ledgerService: ls, topUpService: ts}
}

func registerWalletRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, ts portssvc.TopUpSvc) {
	h := newWalletHandler(ls, ts)

	wallets := rg.Group("/wallets/me")
	{
		wallets.GET("", h.getMyWallet)
		wallets.GET("/entries", h.listMyEntries)
		wallets.POST("/topups", h.createTopUp)
	}
}

// getMyWallet godoc
// @Summary Get the caller's wallet
// @Description Returns the caller's wallet, opening an empty one on first use
// @Tags wallets
// @Produce json
// @Success 200 {object} dto.WalletResponse
// @Security BearerAuth
// @Router /wallets/me [get]
func (h *walletHandler) getMyWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	wallet, err := h.ledgerService.EnsureWallet(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, logger, err, "get wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// listMyEntries godoc
// @Summary List the caller's ledger entries
// @Description Newest first, paged with an opaque nextToken
// @Tags wallets
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/me/entries [get]
func (h *walletHandler) listMyEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	ownerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, logger, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createTopUp godoc
// @Summary Start a wallet top-up
// @Description Creates a gateway payment order and returns its checkout URL
// @Tags wallets
// @Accept json
// @Produce json
// @Param body body dto.CreateTopUpRequest true "Amount"
// @Success 201 {object} dto.TopUpResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/me/topups [post]
func (h *walletHandler) createTopUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	ownerID, ok := requireCaller(c, logger)
	if !ok {
		return
	}

	order, err := h.topUpService.CreateOrder(c.Request.Context(), ownerID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "create top-up order")
		return
	}

	logger.Info("Top-up order created", slog.Int64("order_code", order.OrderCode), slog.String("amount", order.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToTopUpResponse(order))
}
