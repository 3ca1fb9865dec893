package bootstrap

import (
	"log"

	"grant-assist-be/internal/config"
	"grant-assist-be/internal/controller"
	"grant-assist-be/internal/pkg/logger"
	"grant-assist-be/internal/repository/unitofwork"
	"grant-assist-be/internal/service"
	"grant-assist-be/pkg/llm/openai"
	"grant-assist-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	blobStore, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob storage: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider := openai.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.BaseURL, cfg.Ai.Model)
	log.Printf("[INFO] Using LLM model: %s (%s)", cfg.Ai.Model, cfg.Ai.BaseURL)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ProcessTopic, pubSub)
	documentService := service.NewDocumentService(uowFactory, blobStore, publisherService, sysLogger)
	consumerService := service.NewConsumerService(cfg.App.ProcessTopic, pubSub, documentService, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, sysLogger)

	// 5. Controllers
	documentController := controller.NewDocumentController(documentService)
	chatController := controller.NewChatController(chatService)

	return &Container{
		DocumentController: documentController,
		ChatController:     chatController,
		ConsumerService:    consumerService,
	}
}
