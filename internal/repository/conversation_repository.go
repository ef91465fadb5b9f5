package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-board-api/internal/domain"
)

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	CreateOrFind(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	FindByPlatformAndExternalID(ctx context.Context, platformID uuid.UUID, externalID string) (*domain.Conversation, error)
	FindByPlatformID(ctx context.Context, platformID uuid.UUID) ([]*domain.Conversation, error)
	AdvanceLastMessageAt(ctx context.Context, id uuid.UUID, ts time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConversationStatus) error
	CountByStatus(ctx context.Context) (map[domain.ConversationStatus]int64, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// conversationRepositoryImpl is the GORM implementation of ConversationRepository
type conversationRepositoryImpl struct {
	db *gorm.DB
}

// NewConversationRepository creates a new instance of ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepositoryImpl{db: db}
}

// CreateOrFind inserts the conversation, or returns the existing row when
// the (platform_id, external_id) tuple already exists. Same race-safety
// contract as ContactRepository.CreateOrFind: the storage constraint plus
// ON CONFLICT DO NOTHING guarantees at most one conversation per tuple
// under concurrent deliveries.
func (r *conversationRepositoryImpl) CreateOrFind(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform_id"}, {Name: "external_id"}},
			DoNothing: true,
		}).
		Create(conversation)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return conversation, true, nil
	}

	existing, err := r.FindByPlatformAndExternalID(ctx, conversation.PlatformID, conversation.ExternalID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByID finds a conversation by its ID
func (r *conversationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByPlatformAndExternalID finds a conversation by the resolver uniqueness tuple
func (r *conversationRepositoryImpl) FindByPlatformAndExternalID(ctx context.Context, platformID uuid.UUID, externalID string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND external_id = ?", platformID, externalID).
		First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByPlatformID finds all conversations under a platform, most recent first
func (r *conversationRepositoryImpl) FindByPlatformID(ctx context.Context, platformID uuid.UUID) ([]*domain.Conversation, error) {
	var conversations []*domain.Conversation
	if err := r.db.WithContext(ctx).
		Where("platform_id = ?", platformID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// AdvanceLastMessageAt moves last_message_at forward to ts, and only
// forward. Out-of-order or redelivered webhooks carry older timestamps;
// the conditional update makes those a no-op instead of a regression.
func (r *conversationRepositoryImpl) AdvanceLastMessageAt(ctx context.Context, id uuid.UUID, ts time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ? AND (last_message_at IS NULL OR last_message_at < ?)", id, ts).
		Update("last_message_at", ts).Error
}

// UpdateStatus sets the conversation status
func (r *conversationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConversationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts live conversations grouped by status
func (r *conversationRepositoryImpl) CountByStatus(ctx context.Context) (map[domain.ConversationStatus]int64, error) {
	type row struct {
		Status domain.ConversationStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.ConversationStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// DeleteCascade removes a conversation together with its messages and its
// card, renumbering the card's column so positions stay dense.
func (r *conversationRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card domain.Card
		hasCard := true
		if err := tx.Where("conversation_id = ?", id).First(&card).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			hasCard = false
		}

		if err := tx.Where("conversation_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if hasCard {
			if err := tx.Delete(&domain.Card{}, "id = ?", card.ID).Error; err != nil {
				return err
			}
			if err := renumberColumn(tx, card.ColumnID); err != nil {
				return err
			}
		}

		result := tx.Delete(&domain.Conversation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
