package handler

import (
	"context"

	"github.com/google/uuid"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/webhook"
)

// MockInboxService is a function-field mock of service.InboxService
type MockInboxService struct {
	IngestFunc func(ctx context.Context, payload []byte, envelope *webhook.Envelope) error
}

func (m *MockInboxService) Ingest(ctx context.Context, payload []byte, envelope *webhook.Envelope) error {
	return m.IngestFunc(ctx, payload, envelope)
}

// MockBoardService is a function-field mock of service.BoardService
type MockBoardService struct {
	GetBoardFunc            func(ctx context.Context, workspaceID uuid.UUID) (*dto.BoardResponse, error)
	ProjectConversationFunc func(ctx context.Context, conversation *domain.Conversation, firstDelivery bool) error
	MoveCardFunc            func(ctx context.Context, req *dto.MoveCardRequest) error
	CreateColumnFunc        func(ctx context.Context, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	DeleteColumnFunc        func(ctx context.Context, columnID uuid.UUID) error
}

func (m *MockBoardService) GetBoard(ctx context.Context, workspaceID uuid.UUID) (*dto.BoardResponse, error) {
	return m.GetBoardFunc(ctx, workspaceID)
}

func (m *MockBoardService) ProjectConversation(ctx context.Context, conversation *domain.Conversation, firstDelivery bool) error {
	return m.ProjectConversationFunc(ctx, conversation, firstDelivery)
}

func (m *MockBoardService) MoveCard(ctx context.Context, req *dto.MoveCardRequest) error {
	return m.MoveCardFunc(ctx, req)
}

func (m *MockBoardService) CreateColumn(ctx context.Context, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	return m.CreateColumnFunc(ctx, boardID, req)
}

func (m *MockBoardService) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	return m.DeleteColumnFunc(ctx, columnID)
}
