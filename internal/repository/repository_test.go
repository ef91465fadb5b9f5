package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the schema built
// by hand: SQLite has no uuid type and no gen_random_uuid(), the
// BaseModel hook fills ids instead.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Every sqlite connection opens its own :memory: database; a single
	// pooled connection keeps all sessions on the same one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE workspaces (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE platforms (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			workspace_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'WHATSAPP',
			instance_id TEXT NOT NULL,
			config TEXT
		)`,
		`CREATE UNIQUE INDEX uq_platforms_instance_id ON platforms(instance_id)`,
		`CREATE TABLE contacts (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			workspace_id TEXT NOT NULL,
			platform_id TEXT NOT NULL,
			address TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			notes TEXT,
			tags TEXT
		)`,
		`CREATE UNIQUE INDEX uq_contacts_platform_address ON contacts(platform_id, address)`,
		`CREATE TABLE conversations (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			platform_id TEXT NOT NULL,
			contact_id TEXT NOT NULL,
			external_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'OPEN',
			priority TEXT NOT NULL DEFAULT 'MEDIUM',
			assignee_id TEXT,
			tags TEXT,
			last_message_at DATETIME
		)`,
		`CREATE UNIQUE INDEX uq_conversations_platform_external ON conversations(platform_id, external_id)`,
		`CREATE TABLE messages (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			conversation_id TEXT NOT NULL,
			external_id TEXT,
			content TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'TEXT',
			direction TEXT NOT NULL DEFAULT 'INCOMING',
			sender_name TEXT,
			metadata TEXT,
			sent_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX uq_messages_conversation_external ON messages(conversation_id, external_id)`,
		`CREATE TABLE boards (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			workspace_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX uq_boards_workspace_id ON boards(workspace_id)`,
		`CREATE TABLE columns (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			board_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE cards (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			column_id TEXT NOT NULL,
			conversation_id TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE UNIQUE INDEX uq_cards_conversation_id ON cards(conversation_id)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error, "Failed to create test schema")
	}

	return db
}

// seedPlatform creates a workspace with one platform
func seedPlatform(t *testing.T, db *gorm.DB, instanceID string) *domain.Platform {
	t.Helper()

	workspace := &domain.Workspace{Name: "Test Workspace"}
	require.NoError(t, db.Create(workspace).Error)

	platform := &domain.Platform{
		WorkspaceID: workspace.ID,
		Name:        "Support Line",
		Type:        domain.PlatformTypeWhatsApp,
		InstanceID:  instanceID,
	}
	require.NoError(t, db.Create(platform).Error)
	return platform
}

// seedConversation creates a contact and a conversation under the platform
func seedConversation(t *testing.T, db *gorm.DB, platform *domain.Platform, address string) *domain.Conversation {
	t.Helper()

	contact := &domain.Contact{
		WorkspaceID: platform.WorkspaceID,
		PlatformID:  platform.ID,
		Address:     address,
		Name:        address,
	}
	require.NoError(t, db.Create(contact).Error)

	conversation := &domain.Conversation{
		PlatformID: platform.ID,
		ContactID:  contact.ID,
		ExternalID: address,
		Status:     domain.StatusOpen,
		Priority:   domain.PriorityMedium,
	}
	require.NoError(t, db.Create(conversation).Error)
	return conversation
}

// seedBoard creates a board with named columns at dense positions
func seedBoard(t *testing.T, db *gorm.DB, workspaceID uuid.UUID, columnNames ...string) *domain.Board {
	t.Helper()

	board := &domain.Board{WorkspaceID: workspaceID, Name: "Inbox"}
	for i, name := range columnNames {
		board.Columns = append(board.Columns, domain.Column{Name: name, Position: i + 1})
	}
	require.NoError(t, db.Create(board).Error)
	return board
}

// columnPositions returns the card positions of a column in order
func columnPositions(t *testing.T, db *gorm.DB, columnID uuid.UUID) []int {
	t.Helper()

	var cards []domain.Card
	require.NoError(t, db.Where("column_id = ?", columnID).Order("position ASC").Find(&cards).Error)

	positions := make([]int, len(cards))
	for i, card := range cards {
		positions[i] = card.Position
	}
	return positions
}

func testContext() context.Context {
	return context.Background()
}

func ts(offset int) time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}
