package api

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/internal/stores/recording"
	"github.com/medscribe/medscribe/pkg/utils"

	health_module "github.com/medscribe/medscribe/internal/api/modules/health"
	notes_module "github.com/medscribe/medscribe/internal/api/modules/notes"
	recordings_module "github.com/medscribe/medscribe/internal/api/modules/recordings"
	transcribe_module "github.com/medscribe/medscribe/internal/api/modules/transcribe"
)

// Dependencies carries the collaborators the route modules need.
type Dependencies struct {
	Store       recording.Store
	Transcriber transcribe_module.Transcriber
	Generator   notes_module.Generator
}

// NewRouter builds the gin engine with all API modules registered.
func NewRouter(cfg *utils.Config, deps Dependencies) *gin.Engine {
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	transcribe_module.RegisterRoutes(baseGroup, deps.Transcriber)
	notes_module.RegisterRoutes(baseGroup, deps.Generator)
	recordings_module.RegisterRoutes(baseGroup, deps.Store)

	return engine
}

// Start wires the production dependencies and runs the server.
func Start(cfg *utils.Config) {
	port := cfg.GetWithDefault("API_PORT", "5000")

	// Storage: database when configured, in-memory otherwise
	var store recording.Store
	if dsn := cfg.Get("DATABASE_URL"); dsn != "" {
		dbStore, err := recording.NewDBStore(dsn)
		if err != nil {
			log.Fatalf("[API]: failed to open recording store: %v", err)
		}
		defer dbStore.Close()
		store = dbStore
	} else {
		log.Println("[API]: DATABASE_URL not set, using in-memory recording store")
		store = recording.NewInMemoryStore()
	}

	deps := Dependencies{
		Store:       store,
		Transcriber: transcribe_module.NewWhisperService(cfg),
		Generator:   notes_module.NewLLMService(cfg),
	}

	engine := NewRouter(cfg, deps)

	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API]: Failed to start server: ", err)
	}
}
