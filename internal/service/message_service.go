package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// RecordMessageInput describes one message to persist
type RecordMessageInput struct {
	ConversationID uuid.UUID
	ExternalID     *string
	Content        string
	Type           domain.MessageType
	Direction      domain.MessageDirection
	SenderName     string
	Metadata       datatypes.JSON
	SentAt         time.Time
}

// MessageService defines the interface for message recording
type MessageService interface {
	// Record persists the message idempotently: redelivering an external
	// id already stored under the conversation returns the existing
	// record and created=false.
	Record(ctx context.Context, input RecordMessageInput) (*domain.Message, bool, error)
	GetByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*dto.MessageResponse, error)
}

// messageServiceImpl is the implementation of MessageService
type messageServiceImpl struct {
	messageRepo repository.MessageRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(messageRepo repository.MessageRepository, m *metrics.Metrics, logger *zap.Logger) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		metrics:     m,
		logger:      logger,
	}
}

// Record persists one message under its conversation
func (s *messageServiceImpl) Record(ctx context.Context, input RecordMessageInput) (*domain.Message, bool, error) {
	if input.ConversationID == uuid.Nil {
		return nil, false, response.NewAppError(response.ErrCodeValidation, "Conversation id is required", "")
	}
	if input.SentAt.IsZero() {
		return nil, false, response.NewAppError(response.ErrCodeValidation, "Message timestamp is required", "")
	}

	msgType := input.Type
	if msgType == "" {
		msgType = domain.MessageTypeText
	}
	direction := input.Direction
	if direction == "" {
		direction = domain.DirectionIncoming
	}

	message := &domain.Message{
		ConversationID: input.ConversationID,
		ExternalID:     input.ExternalID,
		Content:        input.Content,
		Type:           msgType,
		Direction:      direction,
		SenderName:     input.SenderName,
		Metadata:       input.Metadata,
		SentAt:         input.SentAt.UTC(),
	}

	recorded, created, err := s.messageRepo.CreateIdempotent(ctx, message)
	if err != nil {
		return nil, false, response.NewAppError(response.ErrCodeInternal, "Failed to record message", err.Error())
	}

	if s.metrics != nil {
		if created {
			s.metrics.IncrementMessageRecorded(metrics.MessageCreated)
		} else {
			s.metrics.IncrementMessageRecorded(metrics.MessageDuplicate)
		}
	}
	if !created {
		s.logger.Debug("Duplicate message delivery ignored",
			zap.String("conversation_id", input.ConversationID.String()),
			zap.Stringp("external_id", input.ExternalID))
	}

	return recorded, created, nil
}

// GetByConversation lists the messages of a conversation, oldest first
func (s *messageServiceImpl) GetByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*dto.MessageResponse, error) {
	messages, err := s.messageRepo.FindByConversationID(ctx, conversationID, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch messages", err.Error())
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = dto.ToMessageResponse(m)
	}
	return responses, nil
}
