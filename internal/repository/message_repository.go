package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-board-api/internal/domain"
)

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	CreateIdempotent(ctx context.Context, message *domain.Message) (*domain.Message, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	FindByConversationAndExternalID(ctx context.Context, conversationID uuid.UUID, externalID string) (*domain.Message, error)
	FindByConversationID(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)
	CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// messageRepositoryImpl is the GORM implementation of MessageRepository
type messageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepositoryImpl{db: db}
}

// CreateIdempotent persists the message unless a message with the same
// external id already exists under the conversation, in which case the
// existing row is returned with created=false. Messages without an
// external id are always inserted. This is what makes at-least-once
// webhook delivery safe to retry.
func (r *messageRepositoryImpl) CreateIdempotent(ctx context.Context, message *domain.Message) (*domain.Message, bool, error) {
	if message.ExternalID == nil {
		if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
			return nil, false, err
		}
		return message, true, nil
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "external_id"}},
			DoNothing: true,
		}).
		Create(message)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return message, true, nil
	}

	existing, err := r.FindByConversationAndExternalID(ctx, message.ConversationID, *message.ExternalID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByID finds a message by its ID
func (r *messageRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindByConversationAndExternalID finds a message by the deduplication key
func (r *messageRepositoryImpl) FindByConversationAndExternalID(ctx context.Context, conversationID uuid.UUID, externalID string) (*domain.Message, error) {
	var message domain.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND external_id = ?", conversationID, externalID).
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindByConversationID lists messages of a conversation, oldest first
func (r *messageRepositoryImpl) FindByConversationID(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []*domain.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountByConversation counts messages under a conversation
func (r *messageRepositoryImpl) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll counts all live messages
func (r *messageRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
