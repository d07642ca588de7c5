package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentora/internal/config"
	"mentora/internal/database/elastic"
	minioclient "mentora/internal/database/minio"
	redisclient "mentora/internal/database/redis"
	"mentora/internal/embedding"
	"mentora/internal/learning_service/service"
	"mentora/internal/llm"
	"mentora/internal/rag/extractors"
	"mentora/internal/rag/generator"
	"mentora/internal/rag/indexer"
	"mentora/internal/rag/retriever"
	"mentora/internal/rag/store"
	"mentora/internal/session"
	"mentora/internal/transcription"
	"mentora/internal/vision"
	"mentora/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const configPath = "config/config.yaml"

func main() {
	// 1. Logger
	logger.Init(logrus.InfoLevel)
	appLogger := logger.New("learning-service", "", "")
	appLogger.Info("Starting learning service...")

	// 2. Configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 3. Document store
	esClient, err := elastic.NewClient(&cfg.Elasticsearch)
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}
	if err := esClient.EnsureIndex(ctx); err != nil {
		log.Fatalf("Failed to prepare index: %v", err)
	}
	docStore := store.NewStore(esClient, appLogger)

	// 4. Session profiles. Redis is preferred; without it profiles live
	// in process memory and die with the service, which is acceptable
	// for a single-node run.
	var profiles session.ProfileStore
	if rdb, err := redisclient.NewClient(ctx, &cfg.Redis); err != nil {
		appLogger.Warn("Redis unavailable, keeping session profiles in memory: " + err.Error())
		profiles = session.NewInMemoryStore()
	} else {
		profiles = session.NewRedisStore(rdb, time.Duration(cfg.Redis.SessionTTL)*time.Second)
	}

	// 5. Raw upload archive. Optional: ingestion works without it.
	var archive service.Archiver
	if mc, err := minioclient.NewClient(ctx, &cfg.MinIO); err != nil {
		appLogger.Warn("MinIO unavailable, raw uploads will not be archived: " + err.Error())
	} else {
		archive = mc
	}

	// 6. Model clients
	embedder, err := embedding.NewEmdModel(&cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to create embedding client: %v", err)
	}
	llmClient, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	visionModel, err := vision.NewGemini(ctx, cfg.Vision.Model, cfg.Vision.APIKey)
	if err != nil {
		log.Fatalf("Failed to create vision client: %v", err)
	}
	transcriber, err := transcription.NewWhisper(cfg.Transcription.APIKey, cfg.Transcription.Model)
	if err != nil {
		log.Fatalf("Failed to create transcription client: %v", err)
	}

	// 7. RAG core
	dispatcher := extractors.NewDispatcher(visionModel, transcriber)
	idx := indexer.NewIndexer(embedder, docStore, appLogger)
	ret := retriever.NewRetriever(embedder, docStore, appLogger)
	gen := generator.NewGenerator(ret, llmClient, appLogger)

	svc := service.NewService(dispatcher, idx, ret, gen, docStore, profiles, archive, appLogger)
	handler := NewHttpHandler(svc, esClient, appLogger)

	// 8. HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(traceMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/materials", handler.uploadMaterial)
		api.POST("/materials/url", handler.ingestURL)
		api.GET("/materials", handler.listMaterials)
		api.POST("/search", handler.search)
		api.POST("/explain", handler.explain)
		api.GET("/profile", handler.getProfile)
		api.PUT("/profile", handler.updateProfile)
		api.DELETE("/profile/difficulties", handler.clearDifficulties)
	}
	router.GET("/health", handler.health)

	go func() {
		appLogger.Info("HTTP server listening at " + cfg.Server.Port)
		if err := router.Run(cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down...")
}
