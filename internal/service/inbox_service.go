package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/capture"
	"chat-board-api/internal/domain"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/response"
	"chat-board-api/internal/webhook"
)

const (
	platformCachePrefix = "inbox:platform:instance:"
	platformCacheTTL    = 5 * time.Minute
)

// InboxService defines the interface for webhook ingestion
type InboxService interface {
	// Ingest runs the reconciliation pipeline for one validated envelope.
	// Unknown instances are captured and dropped without error; the
	// caller has already acknowledged the delivery. A returned error
	// means the pipeline failed mid-way and the provider should redeliver;
	// idempotent recording makes redelivery safe.
	Ingest(ctx context.Context, payload []byte, envelope *webhook.Envelope) error
}

// inboxServiceImpl is the implementation of InboxService
type inboxServiceImpl struct {
	platformRepo        repository.PlatformRepository
	contactService      ContactService
	conversationService ConversationService
	messageService      MessageService
	boardService        BoardService
	ring                *capture.Ring
	cache               *redis.Client
	metrics             *metrics.Metrics
	logger              *zap.Logger
}

// NewInboxService creates a new instance of InboxService
func NewInboxService(
	platformRepo repository.PlatformRepository,
	contactService ContactService,
	conversationService ConversationService,
	messageService MessageService,
	boardService BoardService,
	ring *capture.Ring,
	cache *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) InboxService {
	return &inboxServiceImpl{
		platformRepo:        platformRepo,
		contactService:      contactService,
		conversationService: conversationService,
		messageService:      messageService,
		boardService:        boardService,
		ring:                ring,
		cache:               cache,
		metrics:             m,
		logger:              logger,
	}
}

// Ingest reconciles one webhook envelope into inbox records
func (s *inboxServiceImpl) Ingest(ctx context.Context, payload []byte, envelope *webhook.Envelope) error {
	platform, err := s.resolvePlatform(ctx, envelope.Instance)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.capture(envelope, payload, true, "unknown instance")
			if s.metrics != nil {
				s.metrics.IncrementWebhookEvent(metrics.WebhookDropped)
			}
			s.logger.Warn("Webhook dropped for unknown instance",
				zap.String("instance", envelope.Instance),
				zap.String("event", envelope.Event))
			return nil
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve platform", err.Error())
	}

	s.capture(envelope, payload, false, "")
	if s.metrics != nil {
		s.metrics.IncrementWebhookEvent(metrics.WebhookAccepted)
	}

	for _, inbound := range envelope.Normalize() {
		if err := s.reconcile(ctx, platform, inbound); err != nil {
			s.logger.Error("Failed to reconcile inbound message",
				zap.String("instance", envelope.Instance),
				zap.String("external_id", inbound.ExternalID),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// reconcile runs contact → conversation → message → board for one entry
func (s *inboxServiceImpl) reconcile(ctx context.Context, platform *domain.Platform, inbound webhook.Inbound) error {
	// The contact is always the remote party. pushName on an outgoing
	// message names the operator, not the contact, so it is ignored there.
	displayName := inbound.SenderName
	if inbound.Direction == domain.DirectionOutgoing {
		displayName = ""
	}

	contact, err := s.contactService.Resolve(ctx, platform.WorkspaceID, platform.ID, inbound.Address, displayName)
	if err != nil {
		return err
	}

	conversation, _, err := s.conversationService.Resolve(ctx, platform.ID, contact.ID, inbound.Address, inbound.SentAt)
	if err != nil {
		return err
	}

	externalID := inbound.ExternalID
	_, created, err := s.messageService.Record(ctx, RecordMessageInput{
		ConversationID: conversation.ID,
		ExternalID:     &externalID,
		Content:        inbound.Body,
		Type:           inbound.Type,
		Direction:      inbound.Direction,
		SenderName:     inbound.SenderName,
		SentAt:         inbound.SentAt,
	})
	if err != nil {
		return err
	}

	if inbound.Direction != domain.DirectionIncoming {
		return nil
	}

	// Projection runs for duplicates too: a redelivery may be finishing
	// what an attempt that failed after recording the message left
	// undone. The card lookup makes it idempotent. Reopening is tied to
	// the first delivery so a redelivered old message cannot reopen a
	// thread a human has since closed.
	return s.boardService.ProjectConversation(ctx, conversation, created)
}

// resolvePlatform maps an instance identifier to its platform, going
// through the cache when one is configured. Cache failures fall back to
// the database; a missing platform is reported as gorm.ErrRecordNotFound.
func (s *inboxServiceImpl) resolvePlatform(ctx context.Context, instanceID string) (*domain.Platform, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, platformCachePrefix+instanceID).Result(); err == nil {
			if id, parseErr := uuid.Parse(cached); parseErr == nil {
				if platform, findErr := s.platformRepo.FindByID(ctx, id); findErr == nil {
					return platform, nil
				}
			}
		}
	}

	platform, err := s.platformRepo.FindByInstanceID(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, platformCachePrefix+instanceID, platform.ID.String(), platformCacheTTL).Err(); err != nil {
			s.logger.Debug("Failed to cache platform lookup", zap.Error(err))
		}
	}
	return platform, nil
}

func (s *inboxServiceImpl) capture(envelope *webhook.Envelope, payload []byte, dropped bool, reason string) {
	if s.ring == nil {
		return
	}
	s.ring.Append(capture.Entry{
		ReceivedAt: time.Now().UTC(),
		Event:      envelope.Event,
		Instance:   envelope.Instance,
		Dropped:    dropped,
		Reason:     reason,
		Payload:    payload,
	})
}
