package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"chat-board-api/internal/capture"
	"chat-board-api/internal/config"
	"chat-board-api/internal/handler"
	"chat-board-api/internal/metrics"
	"chat-board-api/internal/middleware"
	"chat-board-api/internal/repository"
	"chat-board-api/internal/service"
)

// Setup wires repositories, services and handlers into the HTTP engine
func Setup(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	ring *capture.Ring,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Mode == "release" || cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	// Repositories
	workspaceRepo := repository.NewWorkspaceRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	contactRepo := repository.NewContactRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	boardRepo := repository.NewBoardRepository(db)

	// Services
	workspaceService := service.NewWorkspaceService(workspaceRepo, logger)
	platformService := service.NewPlatformService(platformRepo, workspaceRepo, logger)
	contactService := service.NewContactService(contactRepo, logger)
	conversationService := service.NewConversationService(conversationRepo, logger)
	messageService := service.NewMessageService(messageRepo, m, logger)
	boardService := service.NewBoardService(boardRepo, platformRepo, cfg.Board.ReopenOnInbound, m, logger)
	inboxService := service.NewInboxService(platformRepo, contactService, conversationService, messageService, boardService, ring, redisClient, m, logger)

	// Handlers
	webhookHandler := handler.NewWebhookHandler(inboxService, m, logger)
	boardHandler := handler.NewBoardHandler(boardService)
	conversationHandler := handler.NewConversationHandler(conversationService, messageService)
	platformHandler := handler.NewPlatformHandler(platformService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	debugHandler := handler.NewDebugHandler(ring)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Unauthenticated surface: webhook ingestion, probes, metrics, debug
	r.POST("/webhooks/events", webhookHandler.HandleEvent)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/debug/webhooks", debugHandler.GetWebhookCaptures)

	// API routes with base path
	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.JWT.Secret))
		{
			authenticated.POST("/workspaces", workspaceHandler.Create)
			authenticated.GET("/workspaces", workspaceHandler.List)
			authenticated.GET("/workspaces/:workspaceId", workspaceHandler.Get)
			authenticated.GET("/workspaces/:workspaceId/board", boardHandler.GetBoard)
			authenticated.POST("/workspaces/:workspaceId/platforms", platformHandler.Create)
			authenticated.GET("/workspaces/:workspaceId/platforms", platformHandler.GetByWorkspace)

			authenticated.DELETE("/platforms/:platformId", platformHandler.Delete)
			authenticated.GET("/platforms/:platformId/conversations", conversationHandler.GetByPlatform)

			authenticated.GET("/conversations/:conversationId/messages", conversationHandler.GetMessages)
			authenticated.DELETE("/conversations/:conversationId", conversationHandler.Delete)

			authenticated.POST("/boards/:boardId/columns", boardHandler.CreateColumn)
			authenticated.DELETE("/columns/:columnId", boardHandler.DeleteColumn)
			authenticated.POST("/cards/move", boardHandler.MoveCard)
		}
	}

	return r
}
