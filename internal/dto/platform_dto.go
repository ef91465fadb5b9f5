package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"chat-board-api/internal/domain"
)

// CreatePlatformRequest registers a messaging platform connection
type CreatePlatformRequest struct {
	Name       string              `json:"name" binding:"required"`
	Type       domain.PlatformType `json:"type" binding:"required"`
	InstanceID string              `json:"instance_id" binding:"required"`
	Config     datatypes.JSON      `json:"config"`
}

// PlatformResponse is the API shape of a platform connection
type PlatformResponse struct {
	ID          uuid.UUID           `json:"id"`
	WorkspaceID uuid.UUID           `json:"workspace_id"`
	Name        string              `json:"name"`
	Type        domain.PlatformType `json:"type"`
	InstanceID  string              `json:"instance_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToPlatformResponse converts a platform to its response shape
func ToPlatformResponse(p *domain.Platform) *PlatformResponse {
	return &PlatformResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Type:        p.Type,
		InstanceID:  p.InstanceID,
		CreatedAt:   p.CreatedAt,
	}
}

// CreateWorkspaceRequest creates a workspace
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

// WorkspaceResponse is the API shape of a workspace
type WorkspaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToWorkspaceResponse converts a workspace to its response shape
func ToWorkspaceResponse(w *domain.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}
}
