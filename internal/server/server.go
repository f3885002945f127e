package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"storeforge/internal/config"
	custommiddleware "storeforge/internal/middleware"
	"storeforge/internal/pipeline"
	"storeforge/internal/repository"
	"storeforge/internal/rewrite"
	"storeforge/internal/scrape"
	"storeforge/internal/service"
	"storeforge/internal/shopify"
	"storeforge/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the whole application: repositories over the shared
// database handle, the import pipeline over the scraping delegate and
// the completion client, the publisher over one shared Shopify client,
// and the HTTP surface on top.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Repositories
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Import pipeline
	extractor := scrape.NewDelegate(cfg.Scraper.BaseURL, cfg.Scraper.Timeout, snapshotRepo, logger)
	completionClient, err := rewrite.NewClient(rewrite.ClientConfig{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	rewriter := rewrite.NewService(completionClient, logger)
	importer := pipeline.NewImporter(extractor, rewriter, logger)

	// Publisher
	shopifyClient := shopify.NewClient(cfg.Shopify.APIVersion, 30*time.Second)
	publisher := shopify.NewPublisher(shopifyClient, logger)

	// Services
	authService := service.NewAuthService(staffRepo, sessionRepo, cfg.JWT.Secret)
	orderService := service.NewOrderService(orderRepo)
	publishService := service.NewPublishService(orderRepo, productRepo, publisher)

	// Middleware shared by handlers
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:pipeline",
	}, logger)

	// Handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(importer, productRepo, logger)
	orderHandler := transport.NewOrderHandler(orderService, publishService, logger)

	authHandler.RegisterRoutes(router, authMiddleware)
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		productHandler.RegisterRoutes(r, rateLimit, adminMiddleware)
		orderHandler.RegisterRoutes(r, rateLimit, adminMiddleware)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute, // imports wait on the scraper and the model
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
