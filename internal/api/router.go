package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mindfulware/therabot/internal/api/auth"
	"github.com/mindfulware/therabot/internal/api/chat"
	"github.com/mindfulware/therabot/internal/api/journal"
	"github.com/mindfulware/therabot/internal/api/middleware"
	"github.com/mindfulware/therabot/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	authService *service.AuthService,
	chatService *service.ChatService,
	journalService *service.JournalService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth API (public)
	authHandler := auth.NewHandler(authService)
	authGroup := r.Group("/api/auth")
	authHandler.RegisterRoutes(authGroup)

	// Chat API (requires a login session)
	chatHandler := chat.NewHandler(chatService)
	chatGroup := r.Group("/api/chat")
	chatGroup.Use(middleware.Session(authService))
	chatHandler.RegisterRoutes(chatGroup)

	// Journal API (requires a login session)
	journalHandler := journal.NewHandler(journalService)
	journalGroup := r.Group("/api/journal")
	journalGroup.Use(middleware.Session(authService))
	journalHandler.RegisterRoutes(journalGroup)

	return r
}
