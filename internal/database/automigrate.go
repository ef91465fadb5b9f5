package database

import (
	"fmt"

	"gorm.io/gorm"

	"chat-board-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// Order matters: owners before owned so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Workspace{},
		&domain.Platform{},
		&domain.Contact{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Board{},
		&domain.Column{},
		&domain.Card{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
