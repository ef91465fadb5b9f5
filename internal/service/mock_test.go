package service

import (
	"context"

	"github.com/google/uuid"

	"chat-board-api/internal/domain"
)

// MockMessageRepository is a function-field mock of MessageRepository
type MockMessageRepository struct {
	CreateIdempotentFunc                func(ctx context.Context, message *domain.Message) (*domain.Message, bool, error)
	FindByIDFunc                        func(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	FindByConversationAndExternalIDFunc func(ctx context.Context, conversationID uuid.UUID, externalID string) (*domain.Message, error)
	FindByConversationIDFunc            func(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)
	CountByConversationFunc             func(ctx context.Context, conversationID uuid.UUID) (int64, error)
	CountAllFunc                        func(ctx context.Context) (int64, error)
}

func (m *MockMessageRepository) CreateIdempotent(ctx context.Context, message *domain.Message) (*domain.Message, bool, error) {
	return m.CreateIdempotentFunc(ctx, message)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockMessageRepository) FindByConversationAndExternalID(ctx context.Context, conversationID uuid.UUID, externalID string) (*domain.Message, error) {
	return m.FindByConversationAndExternalIDFunc(ctx, conversationID, externalID)
}

func (m *MockMessageRepository) FindByConversationID(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	return m.FindByConversationIDFunc(ctx, conversationID, limit)
}

func (m *MockMessageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	return m.CountByConversationFunc(ctx, conversationID)
}

func (m *MockMessageRepository) CountAll(ctx context.Context) (int64, error) {
	return m.CountAllFunc(ctx)
}

// MockContactRepository is a function-field mock of ContactRepository
type MockContactRepository struct {
	CreateOrFindFunc             func(ctx context.Context, contact *domain.Contact) (*domain.Contact, bool, error)
	FindByIDFunc                 func(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	FindByPlatformAndAddressFunc func(ctx context.Context, platformID uuid.UUID, address string) (*domain.Contact, error)
	FindByWorkspaceIDFunc        func(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error)
}

func (m *MockContactRepository) CreateOrFind(ctx context.Context, contact *domain.Contact) (*domain.Contact, bool, error) {
	return m.CreateOrFindFunc(ctx, contact)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockContactRepository) FindByPlatformAndAddress(ctx context.Context, platformID uuid.UUID, address string) (*domain.Contact, error) {
	return m.FindByPlatformAndAddressFunc(ctx, platformID, address)
}

func (m *MockContactRepository) FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error) {
	return m.FindByWorkspaceIDFunc(ctx, workspaceID)
}
