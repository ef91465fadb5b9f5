package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-board-api/internal/dto"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/response"
	"chat-board-api/internal/service"
	"chat-board-api/internal/webhook"
)

// WebhookHandler receives provider webhook deliveries
type WebhookHandler struct {
	inboxService service.InboxService
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewWebhookHandler creates a new instance of WebhookHandler
func NewWebhookHandler(inboxService service.InboxService, m *metrics.Metrics, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		inboxService: inboxService,
		metrics:      m,
		logger:       logger,
	}
}

// HandleEvent ingests one webhook delivery. Structurally malformed
// payloads get a 400; everything else is acknowledged with a 200, even
// when the event is dropped (unknown instance) or carries no messages.
func (h *WebhookHandler) HandleEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.rejectInvalid(c, "Failed to read request body")
		return
	}

	var envelope webhook.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		h.rejectInvalid(c, "Invalid JSON payload")
		return
	}
	if err := envelope.Validate(); err != nil {
		if h.metrics != nil {
			h.metrics.IncrementWebhookEvent(metrics.WebhookInvalid)
		}
		handleServiceError(c, err)
		return
	}

	if err := h.inboxService.Ingest(c.Request.Context(), payload, &envelope); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAck{
		Received:  true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *WebhookHandler) rejectInvalid(c *gin.Context, message string) {
	if h.metrics != nil {
		h.metrics.IncrementWebhookEvent(metrics.WebhookInvalid)
	}
	response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, message)
}
