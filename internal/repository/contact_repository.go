package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-board-api/internal/domain"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	CreateOrFind(ctx context.Context, contact *domain.Contact) (*domain.Contact, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	FindByPlatformAndAddress(ctx context.Context, platformID uuid.UUID, address string) (*domain.Contact, error)
	FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error)
}

// contactRepositoryImpl is the GORM implementation of ContactRepository
type contactRepositoryImpl struct {
	db *gorm.DB
}

// NewContactRepository creates a new instance of ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepositoryImpl{db: db}
}

// CreateOrFind inserts the contact, or returns the existing row when the
// (platform_id, address) tuple is already taken. The insert uses
// ON CONFLICT DO NOTHING so two concurrent webhook deliveries racing on
// the same unseen address can never create two contacts, regardless of
// how many processes serve traffic. Returns created=true when this call
// inserted the row.
func (r *contactRepositoryImpl) CreateOrFind(ctx context.Context, contact *domain.Contact) (*domain.Contact, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform_id"}, {Name: "address"}},
			DoNothing: true,
		}).
		Create(contact)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return contact, true, nil
	}

	existing, err := r.FindByPlatformAndAddress(ctx, contact.PlatformID, contact.Address)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByID finds a contact by its ID
func (r *contactRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByPlatformAndAddress finds a contact by the resolver uniqueness tuple
func (r *contactRepositoryImpl) FindByPlatformAndAddress(ctx context.Context, platformID uuid.UUID, address string) (*domain.Contact, error) {
	var contact domain.Contact
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND address = ?", platformID, address).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByWorkspaceID finds all contacts in a workspace
func (r *contactRepositoryImpl) FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}
