package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chat-board-api/internal/response"
	"chat-board-api/internal/service"
)

const defaultMessageLimit = 100

// ConversationHandler serves conversation and message reads
type ConversationHandler struct {
	conversationService service.ConversationService
	messageService      service.MessageService
}

// NewConversationHandler creates a new instance of ConversationHandler
func NewConversationHandler(
	conversationService service.ConversationService,
	messageService service.MessageService,
) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		messageService:      messageService,
	}
}

// GetByPlatform lists a platform's conversations, most recent first
func (h *ConversationHandler) GetByPlatform(c *gin.Context) {
	platformID, err := uuid.Parse(c.Param("platformId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid platform ID")
		return
	}

	conversations, err := h.conversationService.GetByPlatform(c.Request.Context(), platformID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, conversations)
}

// GetMessages lists a conversation's messages, oldest first
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("conversationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid conversation ID")
		return
	}

	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit")
			return
		}
		limit = parsed
	}

	messages, err := h.messageService.GetByConversation(c.Request.Context(), conversationID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, messages)
}

// Delete removes a conversation with its messages and card
func (h *ConversationHandler) Delete(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("conversationId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid conversation ID")
		return
	}

	if err := h.conversationService.Delete(c.Request.Context(), conversationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Conversation deleted successfully"})
}
