package repository

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-board-api/internal/domain"
)

func TestConversationCreateOrFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	platform := seedPlatform(t, db, "inst-1")
	contact := seedConversation(t, db, platform, "5511888888888").ContactID

	conversation := &domain.Conversation{
		PlatformID: platform.ID,
		ContactID:  contact,
		ExternalID: "5511999999999",
		Status:     domain.StatusOpen,
		Priority:   domain.PriorityMedium,
	}
	first, created, err := repo.CreateOrFind(testContext(), conversation)
	require.NoError(t, err)
	assert.True(t, created)

	duplicate := &domain.Conversation{
		PlatformID: platform.ID,
		ContactID:  contact,
		ExternalID: "5511999999999",
		Status:     domain.StatusOpen,
		Priority:   domain.PriorityMedium,
	}
	second, created, err := repo.CreateOrFind(testContext(), duplicate)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestConversationCreateOrFindConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	platform := seedPlatform(t, db, "inst-1")
	contact := seedConversation(t, db, platform, "5511888888888").ContactID

	const workers = 8
	ids := make(chan uuid.UUID, workers)
	created := make(chan bool, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conversation, wasCreated, err := repo.CreateOrFind(testContext(), &domain.Conversation{
				PlatformID: platform.ID,
				ContactID:  contact,
				ExternalID: "5511999999999",
				Status:     domain.StatusOpen,
				Priority:   domain.PriorityMedium,
			})
			if err != nil {
				errs <- err
				return
			}
			ids <- conversation.ID
			created <- wasCreated
		}()
	}
	wg.Wait()
	close(ids)
	close(created)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Exactly one caller wins the insert; everyone converges on its row.
	winners := 0
	for wasCreated := range created {
		if wasCreated {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	var firstID uuid.UUID
	for id := range ids {
		if firstID == uuid.Nil {
			firstID = id
		}
		assert.Equal(t, firstID, id)
	}

	var count int64
	require.NoError(t, db.Model(&domain.Conversation{}).
		Where("external_id = ?", "5511999999999").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdvanceLastMessageAtIsMonotonic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	platform := seedPlatform(t, db, "inst-1")
	conversation := seedConversation(t, db, platform, "5511999999999")

	require.NoError(t, repo.AdvanceLastMessageAt(testContext(), conversation.ID, ts(10)))

	loaded, err := repo.FindByID(testContext(), conversation.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastMessageAt)
	assert.Equal(t, ts(10), loaded.LastMessageAt.UTC())

	// An older timestamp never regresses the marker.
	require.NoError(t, repo.AdvanceLastMessageAt(testContext(), conversation.ID, ts(5)))
	loaded, err = repo.FindByID(testContext(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, ts(10), loaded.LastMessageAt.UTC())

	// A newer one advances it.
	require.NoError(t, repo.AdvanceLastMessageAt(testContext(), conversation.ID, ts(20)))
	loaded, err = repo.FindByID(testContext(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, ts(20), loaded.LastMessageAt.UTC())
}

func TestUpdateStatusMissingConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	platform := seedPlatform(t, db, "inst-1")
	conversation := seedConversation(t, db, platform, "5511999999999")

	require.NoError(t, repo.UpdateStatus(testContext(), conversation.ID, domain.StatusResolved))
	loaded, err := repo.FindByID(testContext(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, loaded.Status)
}

func TestCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	platform := seedPlatform(t, db, "inst-1")

	open := seedConversation(t, db, platform, "111")
	_ = open
	resolvedA := seedConversation(t, db, platform, "222")
	resolvedB := seedConversation(t, db, platform, "333")
	require.NoError(t, repo.UpdateStatus(testContext(), resolvedA.ID, domain.StatusResolved))
	require.NoError(t, repo.UpdateStatus(testContext(), resolvedB.ID, domain.StatusResolved))

	counts, err := repo.CountByStatus(testContext())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.StatusOpen])
	assert.Equal(t, int64(2), counts[domain.StatusResolved])
}

func TestConversationDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	messageRepo := NewMessageRepository(db)
	platform := seedPlatform(t, db, "inst-1")
	conversation := seedConversation(t, db, platform, "5511999999999")
	keep := seedConversation(t, db, platform, "5511888888888")

	board := seedBoard(t, db, platform.WorkspaceID, "Open")
	boardRepo := NewBoardRepository(db)
	_, _, err := boardRepo.CreateCardAtTail(testContext(), &domain.Card{
		ColumnID:       board.Columns[0].ID,
		ConversationID: conversation.ID,
	})
	require.NoError(t, err)
	_, _, err = boardRepo.CreateCardAtTail(testContext(), &domain.Card{
		ColumnID:       board.Columns[0].ID,
		ConversationID: keep.ID,
	})
	require.NoError(t, err)

	externalID := "MSG1"
	_, _, err = messageRepo.CreateIdempotent(testContext(), &domain.Message{
		ConversationID: conversation.ID,
		ExternalID:     &externalID,
		Content:        "Hello",
		SentAt:         ts(0),
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCascade(testContext(), conversation.ID))

	_, err = repo.FindByID(testContext(), conversation.ID)
	assert.Error(t, err)
	count, err := messageRepo.CountByConversation(testContext(), conversation.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The surviving card's position re-densifies to 1.
	assert.Equal(t, []int{1}, columnPositions(t, db, board.Columns[0].ID))
}
