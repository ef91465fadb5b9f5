package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
)

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	FindAll(ctx context.Context) ([]*domain.Workspace, error)
}

// workspaceRepositoryImpl is the GORM implementation of WorkspaceRepository
type workspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new instance of WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepositoryImpl{db: db}
}

// Create creates a new workspace
func (r *workspaceRepositoryImpl) Create(ctx context.Context, workspace *domain.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

// FindByID finds a workspace by its ID
func (r *workspaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	var workspace domain.Workspace
	if err := r.db.WithContext(ctx).First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// FindAll lists all workspaces
func (r *workspaceRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Workspace, error) {
	var workspaces []*domain.Workspace
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}
