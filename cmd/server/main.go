package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"scribbly/internal/config"
	"scribbly/internal/handler"
	"scribbly/internal/middleware"
	"scribbly/internal/repository/postgres"
	"scribbly/internal/service"
	"scribbly/internal/service/ai"
	"scribbly/internal/service/ingest"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Run schema migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("migrations applied")

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Redis backs the request rate limiter
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting will fail open", "error", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	folderService := service.NewFolderService(folderRepo, noteRepo, txManager, logger)
	noteService := service.NewNoteService(noteRepo, folderRepo, logger)

	// Setup AI services
	aiClient, err := ai.NewAnthropicClient(cfg.AnthropicAPIKey)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	registry, err := ai.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load model registry: %v", err)
	}
	logger.Info("model registry loaded", "models", len(registry.Models))

	aiService := ai.NewService(aiClient, cfg.DefaultModel, logger)
	generator := ai.NewGenerator(aiClient, registry, logger)
	ingestService := ingest.NewService(noteService, generator, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	aiHandler := handler.NewAIHandler(aiService, logger)
	uploadHandler := handler.NewUploadHandler(ingestService, logger)

	logger.Info("services initialized")

	// Protected routes (Go 1.22+ enhanced patterns)
	api := http.NewServeMux()

	// Folder routes. The literal /path route must exist alongside the
	// {id} routes: ServeMux prefers it, so "path" is never read as an id.
	api.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	api.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	api.HandleFunc("GET /api/folders/path", folderHandler.GetFolderPath)
	api.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	api.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	api.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	api.HandleFunc("GET /api/folders/{id}/path", folderHandler.GetFolderPath)

	// Note routes
	api.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	api.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	api.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	api.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)
	api.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)

	// AI helper routes
	api.HandleFunc("POST /api/ai/improve", aiHandler.ImproveWriting)
	api.HandleFunc("POST /api/ai/summarize", aiHandler.Summarize)
	api.HandleFunc("POST /api/ai/tags", aiHandler.GenerateTags)

	// Upload routes
	api.HandleFunc("POST /api/uploads/pdf", uploadHandler.UploadPDF)
	api.HandleFunc("POST /api/uploads/ppt", uploadHandler.UploadPPT)

	// Public routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("/api/", middleware.Auth(authService)(api))

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RateLimit → Recovery → Routes (Auth guards /api above)
	root = middleware.Recovery(logger)(root)
	root = middleware.RateLimit(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow, logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
