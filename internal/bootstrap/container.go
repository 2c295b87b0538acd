package bootstrap

import (
	"context"
	"log"
	"time"

	"alkulous-relay/internal/config"
	"alkulous-relay/internal/controller"
	"alkulous-relay/internal/handler"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/repository/contract"
	"alkulous-relay/internal/repository/implementation"
	"alkulous-relay/internal/repository/memory"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/internal/service"
	"alkulous-relay/internal/websocket"
	"alkulous-relay/pkg/llm/backend"
	"alkulous-relay/pkg/llm/ollama"
	pktNats "alkulous-relay/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	PublicChatController controller.IPublicChatController
	IdentityController   controller.IIdentityController
	ApiKeyController     controller.IApiKeyController
	OllamaController     controller.IOllamaController
	OAuthController      controller.IOAuthController
	LiveHandler          *handler.LiveHandler

	// SessionMiddleware guards operator routes.
	SessionMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. db may be nil, in which case chat
// history, API keys and users live in process memory.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn("Bootstrap", "No database configured; using in-memory store", nil)
		uowFactory = memory.NewStore().NewRepositoryFactory()
	}

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var sessionRepo contract.SessionRepository
	if rdb != nil {
		sessionRepo = implementation.NewRedisSessionRepository(rdb)
	} else {
		sessionRepo = memory.NewSessionRepository()
	}

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	c.WebSocketHub = websocket.NewHub(rdb, sysLogger)

	// 4. Inference backends
	timeout := time.Duration(cfg.Ai.TimeoutSeconds) * time.Second
	selector := backend.NewSelector(backend.Config{
		LocalBrainURL:   cfg.Ai.LocalBrainURL,
		LocalBrainModel: cfg.Ai.LocalBrainModel,
		OllamaURL:       cfg.Ai.OllamaBaseURL,
		OllamaModel:     cfg.Ai.OllamaModel,
		Timeout:         timeout,
	})

	var modelLister service.ModelLister
	if cfg.Ai.OllamaBaseURL != "" {
		modelLister = ollama.NewClient(cfg.Ai.OllamaBaseURL, 10*time.Second)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	c.ConsumerService = service.NewAuditConsumerService(
		pubSub,
		cfg.App.EventsTopic,
		auditLogger,
		forwarder,
		c.WebSocketHub,
		sysLogger,
	)

	apiKeyService := service.NewApiKeyService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(uowFactory, selector, publisherService, sysLogger)
	publicChatService := service.NewPublicChatService(uowFactory, apiKeyService, selector, publisherService, sysLogger)
	ollamaService := service.NewOllamaService(modelLister, cfg.Ai.OllamaModel, sysLogger)
	sessionService := service.NewSessionService(sessionRepo, cfg.Auth.SessionSecret)
	oauthService := service.NewOAuthService(uowFactory, sessionService, cfg.Auth, sysLogger)

	if cfg.App.AuthDevBypass {
		sysLogger.Warn("Bootstrap", "AUTH_DEV_BYPASS is on; operator routes are open", nil)
	}
	c.SessionMiddleware = serverutils.SessionMiddleware(sessionService, cfg.App.AuthDevBypass, sysLogger)

	// 6. Controllers
	c.ChatController = controller.NewChatController(chatService, sysLogger)
	c.PublicChatController = controller.NewPublicChatController(publicChatService)
	c.IdentityController = controller.NewIdentityController(publicChatService)
	c.ApiKeyController = controller.NewApiKeyController(apiKeyService)
	c.OllamaController = controller.NewOllamaController(ollamaService)
	c.OAuthController = controller.NewOAuthController(oauthService, sessionService, cfg.IsProduction(), sysLogger)
	c.LiveHandler = handler.NewLiveHandler(c.WebSocketHub, sysLogger)

	return c
}

// Close releases infrastructure connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// connectRedis returns nil when Redis is not configured or unreachable.
func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
