package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/response"
)

func TestRecordRequiresConversationAndTimestamp(t *testing.T) {
	svc := NewMessageService(&MockMessageRepository{}, nil, zap.NewNop())

	_, _, err := svc.Record(testContext(), RecordMessageInput{
		SentAt: ts(),
	})
	requireAppErrorCode(t, err, response.ErrCodeValidation)

	_, _, err = svc.Record(testContext(), RecordMessageInput{
		ConversationID: uuid.New(),
	})
	requireAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestRecordDefaultsTypeAndDirection(t *testing.T) {
	var captured *domain.Message
	mockRepo := &MockMessageRepository{
		CreateIdempotentFunc: func(ctx context.Context, message *domain.Message) (*domain.Message, bool, error) {
			captured = message
			return message, true, nil
		},
	}
	svc := NewMessageService(mockRepo, nil, zap.NewNop())

	sentAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	recorded, created, err := svc.Record(testContext(), RecordMessageInput{
		ConversationID: uuid.New(),
		Content:        "Hello",
		SentAt:         sentAt,
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, captured)
	assert.Equal(t, domain.MessageTypeText, captured.Type)
	assert.Equal(t, domain.DirectionIncoming, captured.Direction)
	assert.Equal(t, sentAt.UTC(), captured.SentAt)
	assert.Equal(t, recorded, captured)
}

func TestRecordReportsDuplicate(t *testing.T) {
	externalID := "MSG1"
	existing := &domain.Message{Content: "Hello"}
	mockRepo := &MockMessageRepository{
		CreateIdempotentFunc: func(ctx context.Context, message *domain.Message) (*domain.Message, bool, error) {
			return existing, false, nil
		},
	}
	svc := NewMessageService(mockRepo, nil, zap.NewNop())

	recorded, created, err := svc.Record(testContext(), RecordMessageInput{
		ConversationID: uuid.New(),
		ExternalID:     &externalID,
		Content:        "Hello",
		SentAt:         ts(),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, recorded)
}

func TestRecordWrapsRepositoryError(t *testing.T) {
	mockRepo := &MockMessageRepository{
		CreateIdempotentFunc: func(ctx context.Context, message *domain.Message) (*domain.Message, bool, error) {
			return nil, false, errors.New("disk full")
		},
	}
	svc := NewMessageService(mockRepo, nil, zap.NewNop())

	_, _, err := svc.Record(testContext(), RecordMessageInput{
		ConversationID: uuid.New(),
		Content:        "Hello",
		SentAt:         ts(),
	})
	requireAppErrorCode(t, err, response.ErrCodeInternal)
}

func TestResolveContactRejectsBlankAddress(t *testing.T) {
	svc := NewContactService(&MockContactRepository{}, zap.NewNop())

	_, err := svc.Resolve(testContext(), uuid.New(), uuid.New(), "   ", "Maria")
	requireAppErrorCode(t, err, response.ErrCodeValidation)
}
