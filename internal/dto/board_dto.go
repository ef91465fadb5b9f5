package dto

import (
	"time"

	"github.com/google/uuid"

	"chat-board-api/internal/domain"
)

// BoardResponse is the board with its ordered columns and cards
type BoardResponse struct {
	ID          uuid.UUID        `json:"id"`
	WorkspaceID uuid.UUID        `json:"workspace_id"`
	Name        string           `json:"name"`
	Columns     []ColumnResponse `json:"columns"`
}

// ColumnResponse is one board lane. Status is the status the column's
// name currently maps to for cross-column moves.
type ColumnResponse struct {
	ID       uuid.UUID                 `json:"id"`
	Name     string                    `json:"name"`
	Position int                       `json:"position"`
	Status   domain.ConversationStatus `json:"status"`
	Cards    []CardResponse            `json:"cards"`
}

// CardResponse is the board projection of one conversation
type CardResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateColumnRequest creates a new column at the board tail
type CreateColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

// MoveCardRequest is a user-issued card move command
type MoveCardRequest struct {
	CardID              uuid.UUID `json:"cardId" binding:"required"`
	SourceColumnID      uuid.UUID `json:"sourceColumnId" binding:"required"`
	DestinationColumnID uuid.UUID `json:"destinationColumnId" binding:"required"`
	DestinationIndex    int       `json:"destinationIndex"`
}

// MoveCardResponse acknowledges a move command
type MoveCardResponse struct {
	Success bool `json:"success"`
}
