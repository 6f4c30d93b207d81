package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/dto"
	"github.com/finaya/pixwallet/internal/middleware"
)

// pixKeyHandler handles HTTP requests related to Pix keys.
type pixKeyHandler struct {
	pixKeyService portssvc.PixKeySvcFacade
}

func newPixKeyHandler(ps portssvc.PixKeySvcFacade) *pixKeyHandler {
	return &pixKeyHandler{pixKeyService: ps}
}

// registerPixKeyRoutes registers the key registry routes.
func registerPixKeyRoutes(rg *gin.RouterGroup, pixKeyService portssvc.PixKeySvcFacade) {
	h := newPixKeyHandler(pixKeyService)

	keys := rg.Group("/pix-keys")
	{
		keys.POST("", h.registerPixKey)
		keys.DELETE("/:pixKeyID", h.deactivatePixKey)
	}
}

func (h *pixKeyHandler) registerPixKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RegisterPixKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPixKey", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	key, err := h.pixKeyService.RegisterPixKey(c.Request.Context(), req.WalletID, userID, req.KeyValue, req.KeyType)
	if err != nil {
		respondWithError(c, logger, err, "Failed to register pix key")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPixKeyResponse(key))
}

func (h *pixKeyHandler) listPixKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	keys, err := h.pixKeyService.ListPixKeysByWallet(c.Request.Context(), c.Param("walletID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list pix keys")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPixKeyResponse(keys))
}

func (h *pixKeyHandler) deactivatePixKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.pixKeyService.DeactivatePixKey(c.Request.Context(), c.Param("pixKeyID"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate pix key")
		return
	}

	c.Status(http.StatusNoContent)
}

// transferHandler handles HTTP requests related to Pix transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers the transfer routes.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	pix := rg.Group("/pix")
	{
		pix.POST("/transfers", h.initiateTransfer)
		pix.GET("/transfers/:endToEndID", h.getTransfer)
		pix.GET("/transfers/:endToEndID/entries", h.getTransferEntries)
	}
}

func (h *transferHandler) initiateTransfer(c *gin.Context) {
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

	var req dto.InitiateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitiateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	transfer, err := h.transferService.InitiateTransfer(c.Request.Context(), req.FromWalletID, userID, req.ToKeyValue, req.Amount, idempotencyKey)
	if err != nil {
		respondWithError(c, logger, err, "Failed to initiate transfer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), c.Param("endToEndID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// getTransferEntries returns the ledger legs recorded under one transfer.
func (h *transferHandler) getTransferEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.transferService.ListTransferEntries(c.Request.Context(), c.Param("endToEndID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transfer entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}
