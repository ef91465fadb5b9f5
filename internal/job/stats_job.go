package job

import (
	"context"

	"go.uber.org/zap"

	"chat-board-api/internal/domain"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/repository"
)

// Every status gets a gauge sample even when no conversation holds it,
// so dashboards see an explicit zero instead of a missing series.
var gaugedStatuses = []domain.ConversationStatus{
	domain.StatusOpen,
	domain.StatusInProgress,
	domain.StatusWaiting,
	domain.StatusResolved,
	domain.StatusClosed,
}

// StatsJob refreshes the business gauges from storage
type StatsJob struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

// NewStatsJob creates a new StatsJob instance
func NewStatsJob(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatsJob {
	return &StatsJob{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		metrics:          m,
		logger:           logger,
	}
}

// Run executes one refresh pass
func (j *StatsJob) Run() {
	ctx := context.Background()

	counts, err := j.conversationRepo.CountByStatus(ctx)
	if err != nil {
		j.logger.Error("Failed to count conversations by status", zap.Error(err))
		return
	}
	for _, status := range gaugedStatuses {
		j.metrics.SetConversationsByStatus(string(status), counts[status])
	}

	total, err := j.messageRepo.CountAll(ctx)
	if err != nil {
		j.logger.Error("Failed to count messages", zap.Error(err))
		return
	}
	j.metrics.SetMessagesTotal(total)

	j.logger.Debug("Business gauges refreshed",
		zap.Int64("messages_total", total))
}
