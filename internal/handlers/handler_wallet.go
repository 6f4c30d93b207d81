package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/dto"
	"github.com/finaya/pixwallet/internal/middleware"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, pixKeyService portssvc.PixKeySvcFacade) {
	h := newWalletHandler(walletService)
	kh := newPixKeyHandler(pixKeyService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listWallets)
		wallets.GET("/:walletID", h.getWallet)
		wallets.GET("/:walletID/balance", h.getBalance)
		wallets.GET("/:walletID/statement", h.getStatement)
		wallets.POST("/:walletID/deposit", h.deposit)
		wallets.POST("/:walletID/withdraw", h.withdraw)
		wallets.GET("/:walletID/pix-keys", kh.listPixKeys)
	}
}

func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallets, err := h.walletService.ListWalletsByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list wallets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWalletResponse(wallets))
}

func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), c.Param("walletID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// getBalance returns the current balance, or the balance as of a past
// instant when the "at" query parameter carries an RFC 3339 timestamp.
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	walletID := c.Param("walletID")

	if atParam := c.Query("at"); atParam != "" {
		asOf, err := time.Parse(time.RFC3339, atParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' timestamp, expected RFC 3339"})
			return
		}

		balance, err := h.walletService.HistoricalBalance(c.Request.Context(), walletID, userID, asOf)
		if err != nil {
			respondWithError(c, logger, err, "Failed to retrieve balance")
			return
		}
		c.JSON(http.StatusOK, dto.BalanceResponse{WalletID: walletID, Balance: balance, AsOf: &asOf})
		return
	}

	balance, err := h.walletService.CurrentBalance(c.Request.Context(), walletID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{WalletID: walletID, Balance: balance})
}

func (h *walletHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.walletService.ListEntries(c.Request.Context(), c.Param("walletID"), userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

func (h *walletHandler) deposit(c *gin.Context) {
	h.moveMoney(c, h.walletService.Deposit)
}

func (h *walletHandler) withdraw(c *gin.Context) {
	h.moveMoney(c, h.walletService.Withdraw)
}

// moveMoney is the shared deposit/withdraw flow; both take the same request
// shape and require an Idempotency-Key header.
func (h *walletHandler) moveMoney(c *gin.Context, op func(ctx context.Context, walletID string, userID string, amount decimal.Decimal, key string) (decimal.Decimal, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idempotencyKey := c.GetHeader(idempotencyKeyHeader)
	if idempotencyKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key header is required"})
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for money movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	walletID := c.Param("walletID")
	balance, err := op(c.Request.Context(), walletID, userID, req.Amount, idempotencyKey)
	if err != nil {
		respondWithError(c, logger, err, "Failed to process transaction")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{WalletID: walletID, Balance: balance})
}
