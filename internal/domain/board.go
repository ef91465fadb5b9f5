package domain

import (
	"github.com/google/uuid"
)

// Board is the single kanban view of a workspace's conversations.
// It is created lazily on first access; a workspace has at most one.
type Board struct {
	BaseModel
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_boards_workspace_id" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Columns     []Column  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
}

// Column is an ordered lane on a board. Position is a dense 1..n sequence.
type Column struct {
	BaseModel
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_columns_board_id" json:"board_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Position int       `gorm:"not null" json:"position"`
	Cards    []Card    `gorm:"foreignKey:ColumnID" json:"cards,omitempty"`
}

// Card is the board-visible projection of a single conversation.
// A conversation has at most one live card. Position is dense 1..n
// within the column.
type Card struct {
	BaseModel
	ColumnID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_cards_column_id" json:"column_id"`
	ConversationID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_cards_conversation_id" json:"conversation_id"`
	Position       int          `gorm:"not null" json:"position"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// TableName specifies the table name for Column
func (Column) TableName() string {
	return "columns"
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
