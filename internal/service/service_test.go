package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chat-board-api/internal/capture"
	"chat-board-api/internal/domain"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/repository"
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

// testStack wires the real services over an in-memory database
type testStack struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	ring    *capture.Ring

	platformRepo     repository.PlatformRepository
	contactRepo      repository.ContactRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	boardRepo        repository.BoardRepository

	contacts      ContactService
	conversations ConversationService
	messages      MessageService
	boards        BoardService
	inbox         InboxService
}

func newTestStack(t *testing.T, reopenOnInbound bool) *testStack {
	t.Helper()

	db := setupTestDB(t)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	logger := zap.NewNop()
	ring := capture.NewRing(10)

	s := &testStack{
		db:               db,
		metrics:          m,
		ring:             ring,
		platformRepo:     repository.NewPlatformRepository(db),
		contactRepo:      repository.NewContactRepository(db),
		conversationRepo: repository.NewConversationRepository(db),
		messageRepo:      repository.NewMessageRepository(db),
		boardRepo:        repository.NewBoardRepository(db),
	}
	s.contacts = NewContactService(s.contactRepo, logger)
	s.conversations = NewConversationService(s.conversationRepo, logger)
	s.messages = NewMessageService(s.messageRepo, m, logger)
	s.boards = NewBoardService(s.boardRepo, s.platformRepo, reopenOnInbound, m, logger)
	s.inbox = NewInboxService(s.platformRepo, s.contacts, s.conversations, s.messages, s.boards, ring, nil, m, logger)
	return s
}

// seedPlatform creates a workspace with one platform
func (s *testStack) seedPlatform(t *testing.T, instanceID string) *domain.Platform {
	t.Helper()

	workspace := &domain.Workspace{Name: "Test Workspace"}
	require.NoError(t, s.db.Create(workspace).Error)

	platform := &domain.Platform{
		WorkspaceID: workspace.ID,
		Name:        "Support Line",
		Type:        domain.PlatformTypeWhatsApp,
		InstanceID:  instanceID,
	}
	require.NoError(t, s.db.Create(platform).Error)
	return platform
}

func testContext() context.Context {
	return context.Background()
}

func ts() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}
