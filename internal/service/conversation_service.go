package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// ConversationService defines the interface for conversation resolution
type ConversationService interface {
	// Resolve maps (platform, external id) to a conversation, creating
	// one with defaults when absent, and advances last_message_at to the
	// triggering message's timestamp when that timestamp is newer.
	// Returns created=true when this call created the conversation.
	Resolve(ctx context.Context, platformID, contactID uuid.UUID, externalID string, messageAt time.Time) (*domain.Conversation, bool, error)
	GetByPlatform(ctx context.Context, platformID uuid.UUID) ([]*dto.ConversationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// conversationServiceImpl is the implementation of ConversationService
type conversationServiceImpl struct {
	conversationRepo repository.ConversationRepository
	logger           *zap.Logger
}

// NewConversationService creates a new instance of ConversationService
func NewConversationService(conversationRepo repository.ConversationRepository, logger *zap.Logger) ConversationService {
	return &conversationServiceImpl{
		conversationRepo: conversationRepo,
		logger:           logger,
	}
}

// Resolve looks up or creates the conversation, then advances its
// recency marker. The advance is conditional on the stored value being
// older, so redelivered or reordered webhooks never regress it.
func (s *conversationServiceImpl) Resolve(ctx context.Context, platformID, contactID uuid.UUID, externalID string, messageAt time.Time) (*domain.Conversation, bool, error) {
	if externalID == "" {
		return nil, false, response.NewAppError(response.ErrCodeValidation, "Conversation external id is required", "")
	}

	conversation := &domain.Conversation{
		PlatformID: platformID,
		ContactID:  contactID,
		ExternalID: externalID,
		Status:     domain.StatusOpen,
		Priority:   domain.PriorityMedium,
	}
	resolved, created, err := s.conversationRepo.CreateOrFind(ctx, conversation)
	if err != nil {
		return nil, false, response.NewAppError(response.ErrCodeInternal, "Failed to resolve conversation", err.Error())
	}
	if created {
		s.logger.Info("Conversation created",
			zap.String("conversation_id", resolved.ID.String()),
			zap.String("platform_id", platformID.String()),
			zap.String("external_id", externalID))
	}

	if err := s.conversationRepo.AdvanceLastMessageAt(ctx, resolved.ID, messageAt); err != nil {
		return nil, false, response.NewAppError(response.ErrCodeInternal, "Failed to advance conversation recency", err.Error())
	}
	if resolved.LastMessageAt == nil || resolved.LastMessageAt.Before(messageAt) {
		ts := messageAt
		resolved.LastMessageAt = &ts
	}

	return resolved, created, nil
}

// GetByPlatform lists the conversations under a platform
func (s *conversationServiceImpl) GetByPlatform(ctx context.Context, platformID uuid.UUID) ([]*dto.ConversationResponse, error) {
	conversations, err := s.conversationRepo.FindByPlatformID(ctx, platformID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch conversations", err.Error())
	}

	responses := make([]*dto.ConversationResponse, len(conversations))
	for i, c := range conversations {
		responses[i] = dto.ToConversationResponse(c)
	}
	return responses, nil
}

// Delete removes a conversation and everything under it
func (s *conversationServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.conversationRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Conversation not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete conversation", err.Error())
	}
	return nil
}
