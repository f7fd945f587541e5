package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"comicdash/database"
	"comicdash/internal/config"
	"comicdash/internal/handler"
	"comicdash/internal/middleware"
	"comicdash/internal/platform/authclient"
	"comicdash/internal/platform/storageclient"
	"comicdash/internal/repository"
	"comicdash/internal/service"
	"comicdash/internal/store"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the hosted platform
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to table store: %v", err)
	}

	settingsRepo, err := repository.NewSettingsRedisRepo(cfg.RedisAddr, cfg.RedisPassword, cfg.SettingsTTL)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}

	authClient := authclient.New(cfg.AuthURL, cfg.AuthAPIKey)
	storageClient := storageclient.New(cfg.StorageURL, cfg.StorageBucket, cfg.AuthAPIKey)

	// 3. Repositories and the shared client data store
	bookRepo := repository.NewBookRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	userRepo := repository.NewUserRepository(db)

	sessions := service.NewSessionSource(authClient)
	st := store.New(bookRepo, issueRepo, userRepo, sessions, logger)

	// 4. Services
	authService := service.NewAuthService(authClient, userRepo, cfg.JWTSecret)
	bookService := service.NewBookService(bookRepo, issueRepo, storageClient, st)
	issueService := service.NewIssueService(issueRepo, bookRepo, st)
	userService := service.NewUserService(userRepo, st)
	settingsService := service.NewSettingsService(settingsRepo)

	// 5. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterPublicRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))

	authHandler.RegisterProtectedRoutes(authed.Group("/auth"))

	books := authed.Group("/books")
	handler.NewBookHandler(bookService).RegisterRoutes(books)
	handler.NewIssueHandler(issueService).RegisterRoutes(books, authed.Group("/issues"))
	handler.NewUserHandler(userService).RegisterRoutes(authed, authed.Group("/users"))
	handler.NewSettingsHandler(settingsService).RegisterRoutes(authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
