package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/config"
	"github.com/vedran77/replydesk/internal/database"
	"github.com/vedran77/replydesk/internal/repository"
	memoryrepo "github.com/vedran77/replydesk/internal/repository/memory"
	postgresrepo "github.com/vedran77/replydesk/internal/repository/postgres"
	"github.com/vedran77/replydesk/internal/service"
	"github.com/vedran77/replydesk/internal/transport/http/handlers"
	"github.com/vedran77/replydesk/internal/transport/http/middleware"
	"github.com/vedran77/replydesk/internal/transport/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Repositories
	var (
		operatorRepo     repository.OperatorRepository
		conversationRepo repository.ConversationRepository
	)
	switch cfg.Store {
	case config.StoreMemory:
		operatorRepo = memoryrepo.NewOperatorRepo()
		conversationRepo = memoryrepo.NewConversationRepo()
		logger.Warn("Using in-memory store, data is lost on restart")
	default:
		pool, err := database.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		logger.WithField("host", cfg.DBHost).Info("Connected to database")

		operatorRepo = postgresrepo.NewOperatorRepo(pool)
		conversationRepo = postgresrepo.NewConversationRepo(pool)
	}

	// WebSocket Hub
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// Services
	inspectorService := service.NewInspectorService(conversationRepo, logger, loc)
	inspectorService.SetNotifier(ws.NewHubNotifier(hub))
	seedService := service.NewSeedService(conversationRepo, inspectorService, logger, loc)
	authService := service.NewAuthService(operatorRepo, cfg.JWTSecret, logger)
	if cfg.SeedDemo {
		authService.SetRegisterHook(seedService.SeedOperator)
	}
	orderService := service.NewOrderService()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	inspectorHandler := handlers.NewInspectorHandler(inspectorService, logger)
	orderHandler := handlers.NewOrderHandler(orderService)
	seedHandler := handlers.NewSeedHandler(seedService, logger)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/orders/statuses", orderHandler.ListStatuses)
	mux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetStatus)

	// Protected - Inspector
	mux.Handle("GET /api/v1/inspector", auth(http.HandlerFunc(inspectorHandler.View)))
	mux.Handle("PUT /api/v1/inspector/filter", auth(http.HandlerFunc(inspectorHandler.SetFilter)))
	mux.Handle("PUT /api/v1/inspector/selection", auth(http.HandlerFunc(inspectorHandler.Select)))
	mux.Handle("PUT /api/v1/inspector/draft", auth(http.HandlerFunc(inspectorHandler.SetDraft)))
	mux.Handle("POST /api/v1/inspector/star", auth(http.HandlerFunc(inspectorHandler.ToggleStar)))
	mux.Handle("POST /api/v1/inspector/pause", auth(http.HandlerFunc(inspectorHandler.TogglePause)))
	mux.Handle("POST /api/v1/inspector/archive", auth(http.HandlerFunc(inspectorHandler.ToggleArchive)))
	mux.Handle("POST /api/v1/inspector/messages", auth(http.HandlerFunc(inspectorHandler.Send)))
	mux.Handle("POST /api/v1/inspector/messages/{id}/edit", auth(http.HandlerFunc(inspectorHandler.BeginEdit)))
	mux.Handle("DELETE /api/v1/inspector/edit", auth(http.HandlerFunc(inspectorHandler.CancelEdit)))
	mux.Handle("POST /api/v1/inspector/messages/{id}/original", auth(http.HandlerFunc(inspectorHandler.ToggleOriginal)))

	// Protected - Conversations
	mux.Handle("DELETE /api/v1/conversations/{id}", auth(http.HandlerFunc(inspectorHandler.DeleteConversation)))
	mux.Handle("POST /api/v1/seed", auth(http.HandlerFunc(seedHandler.Seed)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, originPatterns(cfg.CORSOrigin), logger))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           middleware.RequestLogger(logger)(middleware.CORS(cfg.CORSOrigin)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":  addr,
			"store": cfg.Store,
		}).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// originPatterns turns CORS_ORIGIN into WebSocket origin patterns.
func originPatterns(origin string) []string {
	if origin == "" {
		return nil
	}
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return []string{u.Host}
	}
	return []string{origin}
}
