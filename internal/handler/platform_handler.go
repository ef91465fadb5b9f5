package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chat-board-api/internal/dto"
	"chat-board-api/internal/response"
	"chat-board-api/internal/service"
)

// PlatformHandler serves platform registration and removal
type PlatformHandler struct {
	platformService service.PlatformService
}

// NewPlatformHandler creates a new instance of PlatformHandler
func NewPlatformHandler(platformService service.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

// Create registers a platform connection under a workspace
func (h *PlatformHandler) Create(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workspace ID")
		return
	}

	var req dto.CreatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	platform, err := h.platformService.Create(c.Request.Context(), workspaceID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, platform)
}

// GetByWorkspace lists a workspace's platforms
func (h *PlatformHandler) GetByWorkspace(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workspace ID")
		return
	}

	platforms, err := h.platformService.GetByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, platforms)
}

// Delete removes a platform and everything reconciled under it
func (h *PlatformHandler) Delete(c *gin.Context) {
	platformID, err := uuid.Parse(c.Param("platformId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid platform ID")
		return
	}

	if err := h.platformService.Delete(c.Request.Context(), platformID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Platform deleted successfully"})
}
