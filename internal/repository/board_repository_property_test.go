package repository

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"chat-board-api/internal/domain"
)

// For any sequence of card inserts and moves over a two-column board,
// every column ends up with positions that are exactly the dense
// sequence 1..n, no gaps and no duplicates.
func TestProperty_CardPositionsStayDense(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("positions are dense 1..n after any op sequence", prop.ForAll(
		func(ops []int) bool {
			db := setupTestDB(t)
			repo := NewBoardRepository(db)
			platform := seedPlatform(t, db, "inst-prop")
			board := seedBoard(t, db, platform.WorkspaceID, "Open", "Resolved")
			columns := []domain.Column{board.Columns[0], board.Columns[1]}

			var cards []*domain.Card
			nextAddress := 0

			for _, op := range ops {
				switch op % 3 {
				case 0: // insert a new card at a column tail
					nextAddress++
					conversation := seedConversation(t, db, platform, "55"+strconv.Itoa(nextAddress))
					column := columns[(op/3)%2]
					card, _, err := repo.CreateCardAtTail(testContext(), &domain.Card{
						ColumnID:       column.ID,
						ConversationID: conversation.ID,
					})
					if err != nil {
						return false
					}
					cards = append(cards, card)

				case 1: // move an existing card within its column
					if len(cards) == 0 {
						continue
					}
					card, err := repo.FindCardByID(testContext(), cards[(op/3)%len(cards)].ID)
					if err != nil {
						return false
					}
					if _, err := repo.MoveCard(testContext(), MoveParams{
						CardID:              card.ID,
						SourceColumnID:      card.ColumnID,
						DestinationColumnID: card.ColumnID,
						DestinationIndex:    (op / 7) % 7, // includes out-of-range values
					}); err != nil {
						return false
					}

				case 2: // move an existing card to the other column
					if len(cards) == 0 {
						continue
					}
					card, err := repo.FindCardByID(testContext(), cards[(op/3)%len(cards)].ID)
					if err != nil {
						return false
					}
					dest := columns[0]
					if card.ColumnID == columns[0].ID {
						dest = columns[1]
					}
					if _, err := repo.MoveCard(testContext(), MoveParams{
						CardID:              card.ID,
						SourceColumnID:      card.ColumnID,
						DestinationColumnID: dest.ID,
						DestinationIndex:    (op / 5) % 7,
					}); err != nil {
						return false
					}
				}
			}

			for _, column := range columns {
				positions := columnPositions(t, db, column.ID)
				for i, position := range positions {
					if position != i+1 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(20, gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
