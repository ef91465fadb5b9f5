package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// PlatformService defines the interface for platform management
type PlatformService interface {
	Create(ctx context.Context, workspaceID uuid.UUID, req *dto.CreatePlatformRequest) (*dto.PlatformResponse, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*dto.PlatformResponse, error)
	// Delete removes the platform and everything reconciled under it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// platformServiceImpl is the implementation of PlatformService
type platformServiceImpl struct {
	platformRepo  repository.PlatformRepository
	workspaceRepo repository.WorkspaceRepository
	logger        *zap.Logger
}

// NewPlatformService creates a new instance of PlatformService
func NewPlatformService(
	platformRepo repository.PlatformRepository,
	workspaceRepo repository.WorkspaceRepository,
	logger *zap.Logger,
) PlatformService {
	return &platformServiceImpl{
		platformRepo:  platformRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// Create registers a platform connection under a workspace
func (s *platformServiceImpl) Create(ctx context.Context, workspaceID uuid.UUID, req *dto.CreatePlatformRequest) (*dto.PlatformResponse, error) {
	instanceID := strings.TrimSpace(req.InstanceID)
	if instanceID == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Instance identifier is required", "")
	}
	if req.Type != domain.PlatformTypeWhatsApp && req.Type != domain.PlatformTypeTelegram {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown platform type", string(req.Type))
	}

	if _, err := s.workspaceRepo.FindByID(ctx, workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Workspace not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up workspace", err.Error())
	}

	if existing, err := s.platformRepo.FindByInstanceID(ctx, instanceID); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Instance is already registered", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check instance", err.Error())
	}

	platform := &domain.Platform{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Type:        req.Type,
		InstanceID:  instanceID,
		Config:      req.Config,
	}
	if err := s.platformRepo.Create(ctx, platform); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create platform", err.Error())
	}

	s.logger.Info("Platform registered",
		zap.String("platform_id", platform.ID.String()),
		zap.String("workspace_id", workspaceID.String()),
		zap.String("instance_id", instanceID))
	return dto.ToPlatformResponse(platform), nil
}

// GetByWorkspace lists the platforms of a workspace
func (s *platformServiceImpl) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*dto.PlatformResponse, error) {
	platforms, err := s.platformRepo.FindByWorkspaceID(ctx, workspaceID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch platforms", err.Error())
	}

	responses := make([]*dto.PlatformResponse, len(platforms))
	for i, p := range platforms {
		responses[i] = dto.ToPlatformResponse(p)
	}
	return responses, nil
}

// Delete removes a platform and its reconciled records
func (s *platformServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.platformRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Platform not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete platform", err.Error())
	}
	s.logger.Info("Platform deleted", zap.String("platform_id", id.String()))
	return nil
}
