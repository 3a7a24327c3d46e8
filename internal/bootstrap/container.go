package bootstrap

import (
	"log"

	"ai-lessonlab-be/internal/config"
	"ai-lessonlab-be/internal/controller"
	"ai-lessonlab-be/internal/pkg/logger"
	"ai-lessonlab-be/internal/pkg/mailer"
	"ai-lessonlab-be/internal/repository/unitofwork"
	"ai-lessonlab-be/internal/service"
	"ai-lessonlab-be/pkg/lesson"
	"ai-lessonlab-be/pkg/llm/factory"
	pktNats "ai-lessonlab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	CategoryController controller.ICategoryController
	PromptController   controller.IPromptController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles exposed for graceful shutdown
	Logger    logger.ILogger
	EventsPub *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Task Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIApiKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	lessonGenerator := lesson.NewGenerator(llmProvider, sysLogger)

	// 3.5 Infrastructure
	// NATS is optional: a nil publisher means events are silently dropped.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	publisherService := service.NewPublisherService(cfg.Ai.LessonTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.LessonTopic,
		uowFactory,
		lessonGenerator,
		natsPub,
	)

	// 4. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth, emailService, natsPub)
	userService := service.NewUserService(uowFactory)
	catalogService := service.NewCatalogService(uowFactory)
	promptService := service.NewPromptService(uowFactory, publisherService, lessonGenerator, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		CategoryController: controller.NewCategoryController(catalogService),
		PromptController:   controller.NewPromptController(promptService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
		EventsPub:          natsPub,
	}
}
