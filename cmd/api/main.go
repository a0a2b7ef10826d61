package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/boa-labs/preapproval/internal/cache"
	"github.com/boa-labs/preapproval/internal/config"
	"github.com/boa-labs/preapproval/internal/handler"
	"github.com/boa-labs/preapproval/internal/integrations/rates"
	"github.com/boa-labs/preapproval/internal/middleware"
	"github.com/boa-labs/preapproval/internal/repository"
	"github.com/boa-labs/preapproval/internal/service"
	"github.com/boa-labs/preapproval/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Response cache (disabled when REDIS_ADDR is unset)
	responseCache := cache.New(cfg.RedisAddr, time.Duration(cfg.CacheTTLSecs)*time.Second, logger)
	defer responseCache.Close()

	// Cost-of-funds rate feed, refreshed daily
	ratesProvider := rates.NewProvider(rates.NewClient(cfg, logger), logger)
	if err := ratesProvider.Refresh(); err != nil {
		logger.Warnf("Initial key rate fetch failed, using policy base rate: %v", err)
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := ratesProvider.Refresh(); err != nil {
			logger.Warnf("Scheduled key rate refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Decision notifications
	var notifier *email.Sender
	if cfg.NotificationsEnabled() {
		notifier = email.NewSender(cfg, logger)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, responseCache, ratesProvider, notifier, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/preapproval", h.Preapproval).Methods("GET", "POST")
	authRouter.HandleFunc("/assess", h.Assess).Methods("POST")
	authRouter.HandleFunc("/challenge-terms", h.ChallengeTerms).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
