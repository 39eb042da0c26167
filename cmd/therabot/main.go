package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/api"
	"github.com/mindfulware/therabot/internal/config"
	"github.com/mindfulware/therabot/internal/emotion"
	"github.com/mindfulware/therabot/internal/genai"
	"github.com/mindfulware/therabot/internal/knowledge"
	"github.com/mindfulware/therabot/internal/repository"
	"github.com/mindfulware/therabot/internal/retrieval"
	"github.com/mindfulware/therabot/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Optional .env file for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthRepository(db)
	chatRepo := repository.NewChatRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	// External AI services behind the conversation pipeline
	sentimentClient := emotion.NewHFClient(cfg.Sentiment.BaseURL, cfg.Sentiment.Model, cfg.Sentiment.MaxLength)
	classifier := emotion.NewClassifier(sentimentClient, logger.Named("emotion"))

	loader := knowledge.NewLoader(cfg.Knowledge.Path, logger.Named("knowledge"))

	embedder := retrieval.NewOllamaEmbedder(cfg.Embedding.BaseURL, cfg.Embedding.Model)
	retriever := retrieval.NewRetriever(embedder, cfg.Knowledge.ScoreThreshold, logger.Named("retrieval"))

	generator := genai.NewOpenAIGenerator(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens)
	responseService := service.NewResponseService(generator, cfg.LLM.MaxAttempts, cfg.LLM.RetryDelay, logger.Named("genai"))

	responder := service.NewResponder(classifier, loader, retriever, embedder, responseService, cfg.Knowledge.TopK, logger.Named("responder"))

	// Initialize services
	authService := service.NewAuthService(userRepo, authRepo, cfg.Auth.SessionTTL)
	chatService := service.NewChatService(chatRepo, responder, logger.Named("chat"))
	journalService := service.NewJournalService(journalRepo)

	// Setup router
	router := api.SetupRouter(authService, chatService, journalService, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Therabot server", zap.String("address", cfg.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
