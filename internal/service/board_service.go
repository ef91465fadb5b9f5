package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/dto"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
)

// Columns seeded onto a lazily created board. The names deliberately
// carry the keywords the status mapping recognizes.
var defaultColumns = []string{"Open", "In Progress", "Waiting", "Resolved"}

// BoardService defines the interface for board projection and commands
type BoardService interface {
	// GetBoard returns the workspace's board, creating it with the
	// default columns on first access.
	GetBoard(ctx context.Context, workspaceID uuid.UUID) (*dto.BoardResponse, error)
	// ProjectConversation gives a conversation board representation: a
	// card at the tail of the first column when none exists yet. It runs
	// on every inbound delivery, duplicates included, so a redelivery can
	// repair a projection an earlier failed attempt skipped. Only a first
	// delivery (firstDelivery=true) may trigger the reopen policy, which
	// moves a terminal conversation's card back to the first column and
	// sets it OPEN.
	ProjectConversation(ctx context.Context, conversation *domain.Conversation, firstDelivery bool) error
	// MoveCard applies a user-issued move command. Same-column moves
	// reindex only; cross-column moves also write the destination
	// column's status onto the conversation, atomically with the
	// relocation.
	MoveCard(ctx context.Context, req *dto.MoveCardRequest) error
	CreateColumn(ctx context.Context, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	DeleteColumn(ctx context.Context, columnID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo       repository.BoardRepository
	platformRepo    repository.PlatformRepository
	reopenOnInbound bool
	metrics         *metrics.Metrics
	logger          *zap.Logger

	// columnLocks serializes move commands per destination column within
	// this process. The move transaction is what guarantees atomicity;
	// the lock keeps concurrent in-process moves from interleaving their
	// position shifts.
	columnLocks sync.Map
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	platformRepo repository.PlatformRepository,
	reopenOnInbound bool,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:       boardRepo,
		platformRepo:    platformRepo,
		reopenOnInbound: reopenOnInbound,
		metrics:         m,
		logger:          logger,
	}
}

// workspaceOf resolves the workspace owning a conversation's platform
func (s *boardServiceImpl) workspaceOf(ctx context.Context, conversation *domain.Conversation) (uuid.UUID, error) {
	platform, err := s.platformRepo.FindByID(ctx, conversation.PlatformID)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve platform", err.Error())
	}
	return platform.WorkspaceID, nil
}

func (s *boardServiceImpl) lockColumn(columnID uuid.UUID) func() {
	actual, _ := s.columnLocks.LoadOrStore(columnID, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetBoard returns the workspace board, creating it lazily
func (s *boardServiceImpl) GetBoard(ctx context.Context, workspaceID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.ensureBoard(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	loaded, err := s.boardRepo.FindByWorkspaceID(ctx, board.WorkspaceID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return toBoardResponse(loaded), nil
}

// ensureBoard finds or lazily creates the workspace's default board
func (s *boardServiceImpl) ensureBoard(ctx context.Context, workspaceID uuid.UUID) (*domain.Board, error) {
	board := &domain.Board{
		WorkspaceID: workspaceID,
		Name:        "Inbox",
	}
	board.Columns = make([]domain.Column, len(defaultColumns))
	for i, name := range defaultColumns {
		board.Columns[i] = domain.Column{Name: name, Position: i + 1}
	}

	resolved, created, err := s.boardRepo.CreateOrFindByWorkspace(ctx, board)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to ensure board", err.Error())
	}
	if created {
		s.logger.Info("Board created",
			zap.String("board_id", resolved.ID.String()),
			zap.String("workspace_id", workspaceID.String()))
		if s.metrics != nil {
			s.metrics.IncrementBoardCreated()
		}
	}
	return resolved, nil
}

// ProjectConversation keeps the board in sync with an inbound message
func (s *boardServiceImpl) ProjectConversation(ctx context.Context, conversation *domain.Conversation, firstDelivery bool) error {
	card, err := s.boardRepo.FindCardByConversationID(ctx, conversation.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to look up card", err.Error())
	}
	hasCard := err == nil

	if hasCard {
		if firstDelivery && conversation.Status.IsTerminal() && s.reopenOnInbound {
			return s.reopen(ctx, conversation, card)
		}
		// Card already on the board, nothing to project.
		return nil
	}

	return s.placeNewCard(ctx, conversation)
}

// placeNewCard creates the conversation's card at the first column tail
func (s *boardServiceImpl) placeNewCard(ctx context.Context, conversation *domain.Conversation) error {
	workspaceID, err := s.workspaceOf(ctx, conversation)
	if err != nil {
		return err
	}

	board, err := s.ensureBoard(ctx, workspaceID)
	if err != nil {
		return err
	}
	firstColumn, err := s.boardRepo.FirstColumn(ctx, board.ID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Board has no columns", err.Error())
	}

	unlock := s.lockColumn(firstColumn.ID)
	defer unlock()

	card := &domain.Card{
		ColumnID:       firstColumn.ID,
		ConversationID: conversation.ID,
	}
	_, created, err := s.boardRepo.CreateCardAtTail(ctx, card)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}
	if !created {
		// Another delivery placed the card first; their projection stands.
		return nil
	}
	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}
	return nil
}

// reopen puts a terminal conversation back into the first column as OPEN
func (s *boardServiceImpl) reopen(ctx context.Context, conversation *domain.Conversation, card *domain.Card) error {
	workspaceID, err := s.workspaceOf(ctx, conversation)
	if err != nil {
		return err
	}
	board, err := s.ensureBoard(ctx, workspaceID)
	if err != nil {
		return err
	}
	firstColumn, err := s.boardRepo.FirstColumn(ctx, board.ID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Board has no columns", err.Error())
	}

	unlock := s.lockColumn(firstColumn.ID)
	defer unlock()

	// Card relocation and status write commit together; a failure leaves
	// the closed state fully intact.
	if err := s.boardRepo.ReopenCard(ctx, card.ID, firstColumn.ID, conversation.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to reopen conversation", err.Error())
	}
	conversation.Status = domain.StatusOpen

	s.logger.Info("Conversation reopened by inbound message",
		zap.String("conversation_id", conversation.ID.String()))
	return nil
}

// MoveCard applies a user-issued move command
func (s *boardServiceImpl) MoveCard(ctx context.Context, req *dto.MoveCardRequest) error {
	if req.CardID == uuid.Nil || req.SourceColumnID == uuid.Nil || req.DestinationColumnID == uuid.Nil {
		return response.NewAppError(response.ErrCodeValidation, "Card, source and destination are required", "")
	}

	// Lock in a fixed order so opposing cross-column moves cannot deadlock.
	first, second := req.SourceColumnID, req.DestinationColumnID
	if second.String() < first.String() {
		first, second = second, first
	}
	unlock := s.lockColumn(first)
	defer unlock()
	if second != first {
		unlockSecond := s.lockColumn(second)
		defer unlockSecond()
	}

	result, err := s.boardRepo.MoveCard(ctx, repository.MoveParams{
		CardID:              req.CardID,
		SourceColumnID:      req.SourceColumnID,
		DestinationColumnID: req.DestinationColumnID,
		DestinationIndex:    req.DestinationIndex,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Card or column not found", "")
		}
		if errors.Is(err, repository.ErrCardNotInColumn) {
			return response.NewAppError(response.ErrCodeValidation, "Card is not in the given source column", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to move card", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardMoved()
	}
	if result.CrossColumn {
		s.logger.Info("Card moved across columns",
			zap.String("card_id", req.CardID.String()),
			zap.String("destination_column_id", req.DestinationColumnID.String()),
			zap.String("new_status", string(result.NewStatus)))
	}
	return nil
}

// CreateColumn appends a column at the board tail
func (s *boardServiceImpl) CreateColumn(ctx context.Context, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	if req.Name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Column name is required", "")
	}

	column := &domain.Column{
		BoardID: boardID,
		Name:    req.Name,
	}
	if err := s.boardRepo.CreateColumn(ctx, column); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create column", err.Error())
	}

	return &dto.ColumnResponse{
		ID:       column.ID,
		Name:     column.Name,
		Position: column.Position,
		Status:   domain.StatusForColumnName(column.Name),
		Cards:    []dto.CardResponse{},
	}, nil
}

// DeleteColumn removes an empty column; a column holding cards is refused
func (s *boardServiceImpl) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	unlock := s.lockColumn(columnID)
	defer unlock()

	if err := s.boardRepo.DeleteColumn(ctx, columnID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Column not found", "")
		}
		if errors.Is(err, repository.ErrColumnNotEmpty) {
			return response.NewAppError(response.ErrCodeConflict, "Column still has cards and cannot be deleted", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete column", err.Error())
	}
	return nil
}

// toBoardResponse converts a loaded board to its response shape
func toBoardResponse(board *domain.Board) *dto.BoardResponse {
	columns := make([]dto.ColumnResponse, len(board.Columns))
	for i, col := range board.Columns {
		cards := make([]dto.CardResponse, len(col.Cards))
		for j, card := range col.Cards {
			cards[j] = dto.CardResponse{
				ID:             card.ID,
				ConversationID: card.ConversationID,
				Position:       card.Position,
				CreatedAt:      card.CreatedAt,
			}
		}
		columns[i] = dto.ColumnResponse{
			ID:       col.ID,
			Name:     col.Name,
			Position: col.Position,
			Status:   domain.StatusForColumnName(col.Name),
			Cards:    cards,
		}
	}
	return &dto.BoardResponse{
		ID:          board.ID,
		WorkspaceID: board.WorkspaceID,
		Name:        board.Name,
		Columns:     columns,
	}
}
