package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-board-api/internal/domain"
)

var (
	// ErrColumnNotEmpty is returned when deleting a column that still holds cards
	ErrColumnNotEmpty = errors.New("column still has cards")
	// ErrCardNotInColumn is returned when a move names a source column the card is not in
	ErrCardNotInColumn = errors.New("card does not belong to the given source column")
)

// MoveParams describes a user-issued card move
type MoveParams struct {
	CardID              uuid.UUID
	SourceColumnID      uuid.UUID
	DestinationColumnID uuid.UUID
	DestinationIndex    int
}

// MoveResult reports the outcome of a card move
type MoveResult struct {
	Card        *domain.Card
	CrossColumn bool
	// NewStatus is set on cross-column moves: the status the destination
	// column's name maps to, already written to the conversation.
	NewStatus domain.ConversationStatus
}

// BoardRepository defines the interface for board, column and card data access
type BoardRepository interface {
	CreateOrFindByWorkspace(ctx context.Context, board *domain.Board) (*domain.Board, bool, error)
	FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) (*domain.Board, error)
	FindColumnByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FirstColumn(ctx context.Context, boardID uuid.UUID) (*domain.Column, error)
	CreateColumn(ctx context.Context, column *domain.Column) error
	DeleteColumn(ctx context.Context, id uuid.UUID) error
	CardsByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
	FindCardByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindCardByConversationID(ctx context.Context, conversationID uuid.UUID) (*domain.Card, error)
	CreateCardAtTail(ctx context.Context, card *domain.Card) (*domain.Card, bool, error)
	MoveCard(ctx context.Context, params MoveParams) (*MoveResult, error)
	MoveCardToColumnTail(ctx context.Context, cardID, columnID uuid.UUID) error
	ReopenCard(ctx context.Context, cardID, columnID, conversationID uuid.UUID) error
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// CreateOrFindByWorkspace inserts the board unless the workspace already
// has one; lazy creation stays race-safe through the workspace_id unique
// constraint. The board's columns are created with it on insert.
func (r *boardRepositoryImpl) CreateOrFindByWorkspace(ctx context.Context, board *domain.Board) (*domain.Board, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workspace_id"}},
			DoNothing: true,
		}).
		Create(board)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return board, true, nil
	}

	existing, err := r.FindByWorkspaceID(ctx, board.WorkspaceID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByWorkspaceID loads the workspace's board with ordered columns and cards
func (r *boardRepositoryImpl) FindByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("columns.position ASC")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("cards.position ASC")
		}).
		Where("workspace_id = ?", workspaceID).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindColumnByID finds a column by its ID
func (r *boardRepositoryImpl) FindColumnByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FirstColumn returns the column at position 1 of a board
func (r *boardRepositoryImpl) FirstColumn(ctx context.Context, boardID uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// CreateColumn appends a column at the board's tail position
func (r *boardRepositoryImpl) CreateColumn(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Column{}).
			Where("board_id = ?", column.BoardID).
			Count(&count).Error; err != nil {
			return err
		}
		column.Position = int(count) + 1
		return tx.Create(column).Error
	})
}

// DeleteColumn removes an empty column and renumbers the remaining
// columns of the board. A column that still holds cards is refused: the
// caller has to empty it first, silently dropping cards would orphan
// conversations from the board.
func (r *boardRepositoryImpl) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column domain.Column
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			return err
		}

		var cardCount int64
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ?", id).
			Count(&cardCount).Error; err != nil {
			return err
		}
		if cardCount > 0 {
			return ErrColumnNotEmpty
		}

		if err := tx.Delete(&domain.Column{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Column{}).
			Where("board_id = ? AND position > ?", column.BoardID, column.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// CardsByColumn lists a column's cards in display order
func (r *boardRepositoryImpl) CardsByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindCardByID finds a card by its ID
func (r *boardRepositoryImpl) FindCardByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindCardByConversationID finds the live card of a conversation
func (r *boardRepositoryImpl) FindCardByConversationID(ctx context.Context, conversationID uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCardAtTail appends the card at the end of its column. The unique
// constraint on conversation_id makes concurrent first-message deliveries
// converge on a single card; created=false means another delivery won.
func (r *boardRepositoryImpl) CreateCardAtTail(ctx context.Context, card *domain.Card) (*domain.Card, bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ?", card.ColumnID).
			Count(&count).Error; err != nil {
			return err
		}
		card.Position = int(count) + 1

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			DoNothing: true,
		}).Create(card)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		return card, true, nil
	}

	existing, err := r.FindCardByConversationID(ctx, card.ConversationID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// MoveCard relocates a card inside one transaction. Same-column moves
// only reindex; cross-column moves remove from the source, insert into
// the destination and write the destination's status onto the
// conversation. Either everything commits or nothing does, so a
// board/status mismatch can never be observed. The destination index
// clamps to the column bounds (past-the-end appends).
func (r *boardRepositoryImpl) MoveCard(ctx context.Context, params MoveParams) (*MoveResult, error) {
	var moveResult MoveResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card domain.Card
		if err := tx.First(&card, "id = ?", params.CardID).Error; err != nil {
			return err
		}
		if card.ColumnID != params.SourceColumnID {
			return ErrCardNotInColumn
		}

		if params.SourceColumnID == params.DestinationColumnID {
			if err := reorderWithinColumn(tx, &card, params.DestinationIndex); err != nil {
				return err
			}
			moveResult = MoveResult{Card: &card, CrossColumn: false}
			return nil
		}

		var destColumn domain.Column
		if err := tx.First(&destColumn, "id = ?", params.DestinationColumnID).Error; err != nil {
			return err
		}

		// Remove from source: close the gap behind the card.
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ? AND position > ?", card.ColumnID, card.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		var destCount int64
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ?", destColumn.ID).
			Count(&destCount).Error; err != nil {
			return err
		}
		index := clampIndex(params.DestinationIndex, int(destCount)+1)

		// Insert into destination: open a slot at the index.
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ? AND position >= ?", destColumn.ID, index).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}

		card.ColumnID = destColumn.ID
		card.Position = index
		if err := tx.Model(&domain.Card{}).
			Where("id = ?", card.ID).
			Updates(map[string]interface{}{
				"column_id": destColumn.ID,
				"position":  index,
			}).Error; err != nil {
			return err
		}

		status := domain.StatusForColumnName(destColumn.Name)
		if err := tx.Model(&domain.Conversation{}).
			Where("id = ?", card.ConversationID).
			Update("status", status).Error; err != nil {
			return err
		}

		moveResult = MoveResult{Card: &card, CrossColumn: true, NewStatus: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &moveResult, nil
}

// MoveCardToColumnTail relocates a card to the end of the given column
// without touching conversation status
func (r *boardRepositoryImpl) MoveCardToColumnTail(ctx context.Context, cardID, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return moveCardToTail(tx, cardID, columnID)
	})
}

// ReopenCard relocates the card to the tail of the given column and
// writes status OPEN onto its conversation in the same transaction, so a
// failure leaves both the card and the status in the closed state.
func (r *boardRepositoryImpl) ReopenCard(ctx context.Context, cardID, columnID, conversationID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := moveCardToTail(tx, cardID, columnID); err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", conversationID).
			Update("status", domain.StatusOpen).Error
	})
}

// moveCardToTail moves a card to the end of columnID within tx
func moveCardToTail(tx *gorm.DB, cardID, columnID uuid.UUID) error {
	var card domain.Card
	if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
		return err
	}
	if card.ColumnID == columnID {
		return reorderWithinColumn(tx, &card, int(^uint(0)>>1))
	}

	if err := tx.Model(&domain.Card{}).
		Where("column_id = ? AND position > ?", card.ColumnID, card.Position).
		UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
		return err
	}

	var destCount int64
	if err := tx.Model(&domain.Card{}).
		Where("column_id = ?", columnID).
		Count(&destCount).Error; err != nil {
		return err
	}

	return tx.Model(&domain.Card{}).
		Where("id = ?", card.ID).
		Updates(map[string]interface{}{
			"column_id": columnID,
			"position":  int(destCount) + 1,
		}).Error
}

// reorderWithinColumn moves a card to index within its own column,
// shifting the cards in between by one. Index clamps to [1, n].
func reorderWithinColumn(tx *gorm.DB, card *domain.Card, index int) error {
	var count int64
	if err := tx.Model(&domain.Card{}).
		Where("column_id = ?", card.ColumnID).
		Count(&count).Error; err != nil {
		return err
	}
	index = clampIndex(index, int(count))
	if index == card.Position {
		return nil
	}

	if index > card.Position {
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ? AND position > ? AND position <= ?", card.ColumnID, card.Position, index).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Model(&domain.Card{}).
			Where("column_id = ? AND position >= ? AND position < ?", card.ColumnID, index, card.Position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}
	}

	card.Position = index
	return tx.Model(&domain.Card{}).
		Where("id = ?", card.ID).
		UpdateColumn("position", index).Error
}

// renumberColumn rewrites a column's card positions to a dense 1..n
// sequence after bulk removals.
func renumberColumn(tx *gorm.DB, columnID uuid.UUID) error {
	var cards []domain.Card
	if err := tx.Where("column_id = ?", columnID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return err
	}
	for i, card := range cards {
		if card.Position == i+1 {
			continue
		}
		if err := tx.Model(&domain.Card{}).
			Where("id = ?", card.ID).
			UpdateColumn("position", i+1).Error; err != nil {
			return err
		}
	}
	return nil
}

// clampIndex bounds a requested 1-based index to [1, max]
func clampIndex(index, max int) int {
	if index < 1 {
		return 1
	}
	if index > max {
		return max
	}
	return index
}
