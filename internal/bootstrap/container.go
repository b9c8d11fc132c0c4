package bootstrap

import (
	"log"

	"ai-claims-be/internal/config"
	"ai-claims-be/internal/controller"
	"ai-claims-be/internal/model"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/internal/repository/contract"
	"ai-claims-be/internal/repository/implementation"
	"ai-claims-be/internal/service"
	"ai-claims-be/pkg/embedding"
	"ai-claims-be/pkg/llm/factory"
	"ai-claims-be/pkg/rag/reasoner"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	QueryController    controller.IQueryController
	HackrxController   controller.IHackrxController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	RetrievalService service.IRetrievalService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewHuggingFaceProvider(cfg.Keys.HuggingFace, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	var chunkRepository contract.PolicyChunkRepository
	if cfg.Vector.Backend == "pgvector" {
		if db == nil {
			log.Fatalf("[FATAL] VECTOR_BACKEND=pgvector requires DB_CONNECTION_STRING")
		}
		chunkRepository = implementation.NewPgvectorChunkRepository(db)
		log.Printf("[INFO] Using Vector Backend: PGVECTOR")
	} else {
		chunkRepository = implementation.NewQdrantChunkRepository(implementation.QdrantConfig{
			URL:        cfg.Vector.QdrantURL,
			APIKey:     cfg.Vector.QdrantKey,
			Collection: cfg.Vector.Collection,
			Dimension:  cfg.Vector.Dimension,
		}, sysLogger)
		log.Printf("[INFO] Using Vector Backend: QDRANT (%s)", cfg.Vector.Collection)
	}

	var ingestionRepository contract.IngestionRepository
	if db != nil {
		if err := db.AutoMigrate(&model.Ingestion{}); err != nil {
			log.Printf("[WARN] Failed to migrate ingestions table: %v", err)
		} else {
			ingestionRepository = implementation.NewIngestionRepository(db)
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.IngestedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestedTopic,
		ingestionRepository,
		sysLogger,
	)

	retrievalService := service.NewRetrievalService(chunkRepository, embeddingProvider, sysLogger)
	documentService := service.NewDocumentService(retrievalService, publisherService, sysLogger)

	ragReasoner := reasoner.NewReasoner(retrievalService, llmProvider, sysLogger)
	queryService := service.NewQueryService(ragReasoner)

	// 6. Controllers
	documentController := controller.NewDocumentController(documentService, cfg.App.UploadDir)
	queryController := controller.NewQueryController(queryService, documentService)
	hackrxController := controller.NewHackrxController(queryService, documentService, cfg.Keys.HackrxBearer)

	return &Container{
		DocumentController: documentController,
		QueryController:    queryController,
		HackrxController:   hackrxController,
		ConsumerService:    consumerService,
		RetrievalService:   retrievalService,
		Logger:             sysLogger,
	}
}
