package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evanofslack/pokerboard/internal/auth"
	"github.com/evanofslack/pokerboard/internal/config"
	"github.com/evanofslack/pokerboard/internal/database"
	"github.com/evanofslack/pokerboard/internal/handlers"
	custommiddleware "github.com/evanofslack/pokerboard/internal/middleware"
	"github.com/evanofslack/pokerboard/internal/services"
	"github.com/evanofslack/pokerboard/internal/storage"
	"github.com/evanofslack/pokerboard/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
)

type BoardServer struct {
	config          *config.Config
	db              *database.DB
	redisClient     *redis.Client
	jwtManager      *auth.JWTManager
	gateMiddleware  *auth.GateMiddleware
	playerService   *services.PlayerService
	sessionService  *services.SessionService
	boardService    *services.BoardService
	photoService    *storage.SpacesService
	apiRateLimiter  *custommiddleware.RateLimiter
	gateRateLimiter *custommiddleware.RateLimiter
	server          *http.Server
	hub             *ws.Hub
}

func NewBoardServer() (*BoardServer, error) {
	// Load configuration
	cfg := config.Load()

	// Setup database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Setup redis. The board works without it, just recomputes every request.
	redisClient := newRedisClient(cfg)

	// Setup access gate. An empty passcode hash means an open table.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, "pokerboard")
	gateEnabled := cfg.GatePasscodeHash != ""
	gateMiddleware := auth.NewGateMiddleware(jwtManager, gateEnabled)
	if !gateEnabled {
		slog.Warn("Access gate disabled, no passcode hash configured")
	}

	// Setup photo storage
	var photoService *storage.SpacesService
	if cfg.PhotoStorageEnabled() {
		photoService, err = storage.NewSpacesService(cfg.SpacesKey, cfg.SpacesSecret, cfg.SpacesRegion, cfg.SpacesBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to set up photo storage: %w", err)
		}
	} else {
		slog.Info("Photo storage disabled, no credentials configured")
	}

	// Setup WebSocket hub
	hub := ws.NewHub()

	// Setup services
	playerService := services.NewPlayerService(db)
	sessionService := services.NewSessionService(db)
	boardService := services.NewBoardService(playerService, sessionService, redisClient, hub)

	// Setup rate limiters
	apiRateLimiter := custommiddleware.NewAPIRateLimiter()
	gateRateLimiter := custommiddleware.NewGateRateLimiter()

	return &BoardServer{
		config:          cfg,
		db:              db,
		redisClient:     redisClient,
		jwtManager:      jwtManager,
		gateMiddleware:  gateMiddleware,
		playerService:   playerService,
		sessionService:  sessionService,
		boardService:    boardService,
		photoService:    photoService,
		apiRateLimiter:  apiRateLimiter,
		gateRateLimiter: gateRateLimiter,
		hub:             hub,
	}, nil
}

func newRedisClient(cfg *config.Config) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Warn("Invalid redis URL, board cache disabled", "error", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, board cache disabled", "error", err)
		client.Close()
		return nil
	}

	return client
}

func (s *BoardServer) Start() error {
	// Setup router
	router := s.setupRouter()

	// Create HTTP server
	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: router,
	}

	// Start WebSocket hub
	go s.hub.Run()

	// Start server in goroutine
	go func() {
		slog.Info("Starting leaderboard server", "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	return s.Shutdown()
}

func (s *BoardServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}

	// Close redis connection
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}

	// Close database connection
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}

	// Close rate limiters
	s.apiRateLimiter.Close()
	s.gateRateLimiter.Close()

	slog.Info("Server shutdown complete")
	return nil
}

func (s *BoardServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(auth.SecurityHeaders)
	r.Use(s.apiRateLimiter.RateLimit) // Apply global rate limiting

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint for board-updated pushes
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(s.hub, w, r)
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		playerHandler := handlers.NewPlayerHandler(s.playerService, s.sessionService, s.boardService, s.photoService)
		gameHandler := handlers.NewGameHandler(s.sessionService, s.boardService)
		leaderboardHandler := handlers.NewLeaderboardHandler(s.boardService)
		gateHandler := handlers.NewGateHandler(s.config.GatePasscodeHash, s.jwtManager)

		// Gate unlock with stricter rate limiting
		r.Group(func(r chi.Router) {
			r.Use(s.gateRateLimiter.RateLimit)
			r.Mount("/gate", gateHandler.Routes())
		})

		// Leaderboard is read-only; player mutations sit behind the gate
		// inside the handler's own router.
		r.Mount("/leaderboard", leaderboardHandler.Routes())
		r.Mount("/players", playerHandler.Routes(s.gateMiddleware.RequireGate))

		// Game submissions are mutations only
		r.Group(func(r chi.Router) {
			r.Use(s.gateMiddleware.RequireGate)
			r.Mount("/games", gameHandler.ProtectedRoutes())
		})
	})

	return r
}
