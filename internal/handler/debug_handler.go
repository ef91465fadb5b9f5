package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-board-api/internal/capture"
	"chat-board-api/internal/response"
)

// DebugHandler exposes operational inspection endpoints
type DebugHandler struct {
	ring *capture.Ring
}

// NewDebugHandler creates a new instance of DebugHandler
func NewDebugHandler(ring *capture.Ring) *DebugHandler {
	return &DebugHandler{ring: ring}
}

// GetWebhookCaptures returns the recent webhook deliveries, oldest first
func (h *DebugHandler) GetWebhookCaptures(c *gin.Context) {
	response.SendSuccess(c, http.StatusOK, gin.H{
		"count":   h.ring.Len(),
		"entries": h.ring.Snapshot(),
	})
}
