package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// WorkspaceService defines the interface for workspace management
type WorkspaceService interface {
	Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error)
	GetAll(ctx context.Context) ([]*dto.WorkspaceResponse, error)
}

// workspaceServiceImpl is the implementation of WorkspaceService
type workspaceServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	logger        *zap.Logger
}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, logger *zap.Logger) WorkspaceService {
	return &workspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// Create creates a new workspace
func (s *workspaceServiceImpl) Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	if req.Name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Workspace name is required", "")
	}

	workspace := &domain.Workspace{Name: req.Name}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create workspace", err.Error())
	}

	s.logger.Info("Workspace created", zap.String("workspace_id", workspace.ID.String()))
	return dto.ToWorkspaceResponse(workspace), nil
}

// GetByID fetches one workspace
func (s *workspaceServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Workspace not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workspace", err.Error())
	}
	return dto.ToWorkspaceResponse(workspace), nil
}

// GetAll lists all workspaces
func (s *workspaceServiceImpl) GetAll(ctx context.Context) ([]*dto.WorkspaceResponse, error) {
	workspaces, err := s.workspaceRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workspaces", err.Error())
	}

	responses := make([]*dto.WorkspaceResponse, len(workspaces))
	for i, w := range workspaces {
		responses[i] = dto.ToWorkspaceResponse(w)
	}
	return responses, nil
}
