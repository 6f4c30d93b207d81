package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/dto"
	"github.com/finaya/pixwallet/internal/middleware"
)

// webhookHandler receives payment network settlement events.
type webhookHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newWebhookHandler(ts portssvc.TransferSvcFacade) *webhookHandler {
	return &webhookHandler{transferService: ts}
}

// registerWebhookRoutes registers the public, rate-limited webhook endpoint.
func registerWebhookRoutes(r *gin.Engine, transferService portssvc.TransferSvcFacade, rateLimit gin.HandlerFunc) {
	h := newWebhookHandler(transferService)

	webhooks := r.Group("/webhooks", rateLimit)
	{
		webhooks.POST("/pix", h.handlePixEvent)
	}
}

// handlePixEvent applies one settlement event. The idempotency key is scoped
// to the event: when the sender omits the Idempotency-Key header, one is
// derived from the event id, so each distinct event still deduplicates on
// redelivery.
func (h *webhookHandler) handlePixEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WebhookEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for pix webhook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	idempotencyKey := c.GetHeader(idempotencyKeyHeader)
	if idempotencyKey == "" {
		idempotencyKey = "pix-event:" + req.EventID
	}

	err := h.transferService.ProcessConfirmation(c.Request.Context(), req.EndToEndID, req.EventID, req.EventType, idempotencyKey)
	if err != nil {
		respondWithError(c, logger, err, "Failed to process event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
