package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// ContactService defines the interface for contact resolution
type ContactService interface {
	// Resolve maps (workspace, platform, address) to a contact, creating
	// one when absent. Never updates an existing contact's address or
	// name; those change only through explicit edits.
	Resolve(ctx context.Context, workspaceID, platformID uuid.UUID, address, displayName string) (*domain.Contact, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error)
}

// contactServiceImpl is the implementation of ContactService
type contactServiceImpl struct {
	contactRepo repository.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new instance of ContactService
func NewContactService(contactRepo repository.ContactRepository, logger *zap.Logger) ContactService {
	return &contactServiceImpl{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Resolve looks up or creates the contact for the uniqueness tuple.
// Creation races are settled by the repository's conflict handling, so
// at most one contact exists per tuple no matter how deliveries
// interleave. "Found after losing the race" is a success, not an error.
func (s *contactServiceImpl) Resolve(ctx context.Context, workspaceID, platformID uuid.UUID, address, displayName string) (*domain.Contact, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Contact address is required", "")
	}

	existing, err := s.contactRepo.FindByPlatformAndAddress(ctx, platformID, address)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up contact", err.Error())
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = address
	}

	contact := &domain.Contact{
		WorkspaceID: workspaceID,
		PlatformID:  platformID,
		Address:     address,
		Name:        name,
	}
	resolved, created, err := s.contactRepo.CreateOrFind(ctx, contact)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create contact", err.Error())
	}
	if created {
		s.logger.Info("Contact created",
			zap.String("contact_id", resolved.ID.String()),
			zap.String("platform_id", platformID.String()),
			zap.String("address", address))
	}
	return resolved, nil
}

// GetByWorkspace lists the contacts of a workspace
func (s *contactServiceImpl) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.FindByWorkspaceID(ctx, workspaceID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch contacts", err.Error())
	}
	return contacts, nil
}
