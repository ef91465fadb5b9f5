package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
)

// PlatformRepository defines the interface for platform data access
type PlatformRepository interface {
	Create(ctx context.Context, platform *domain.Platform) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Platform, error)
	FindByInstanceID(ctx context.Context, instanceID string) (*domain.Platform, error)
	FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Platform, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// platformRepositoryImpl is the GORM implementation of PlatformRepository
type platformRepositoryImpl struct {
	db *gorm.DB
}

// NewPlatformRepository creates a new instance of PlatformRepository
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepositoryImpl{db: db}
}

// Create creates a new platform
func (r *platformRepositoryImpl) Create(ctx context.Context, platform *domain.Platform) error {
	return r.db.WithContext(ctx).Create(platform).Error
}

// FindByID finds a platform by its ID
func (r *platformRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Platform, error) {
	var platform domain.Platform
	if err := r.db.WithContext(ctx).First(&platform, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

// FindByInstanceID finds a platform by the instance identifier carried on webhook events
func (r *platformRepositoryImpl) FindByInstanceID(ctx context.Context, instanceID string) (*domain.Platform, error) {
	var platform domain.Platform
	if err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		First(&platform).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

// FindByWorkspaceID finds all platforms in a workspace
func (r *platformRepositoryImpl) FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Platform, error) {
	var platforms []*domain.Platform
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

// DeleteCascade removes a platform and all dependent records in one
// transaction: messages and cards under its conversations, the
// conversations themselves, then the platform. Columns that lose cards
// are renumbered so their positions stay dense. The cascade is explicit
// rather than delegated to storage-engine declarations so it behaves the
// same on every backend.
func (r *platformRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conversationIDs []uuid.UUID
		if err := tx.Model(&domain.Conversation{}).
			Where("platform_id = ?", id).
			Pluck("id", &conversationIDs).Error; err != nil {
			return err
		}

		if len(conversationIDs) > 0 {
			var columnIDs []uuid.UUID
			if err := tx.Model(&domain.Card{}).
				Where("conversation_id IN ?", conversationIDs).
				Distinct().
				Pluck("column_id", &columnIDs).Error; err != nil {
				return err
			}

			if err := tx.Where("conversation_id IN ?", conversationIDs).
				Delete(&domain.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("conversation_id IN ?", conversationIDs).
				Delete(&domain.Card{}).Error; err != nil {
				return err
			}
			for _, columnID := range columnIDs {
				if err := renumberColumn(tx, columnID); err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", conversationIDs).
				Delete(&domain.Conversation{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&domain.Platform{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
