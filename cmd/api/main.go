// Package main is the entry point for the sync daemon API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/chat"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/config"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/handler"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/llm"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/localstore"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/middleware"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/remotestore"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting sync daemon")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "buggy-ai-sync", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open the local store
	local, err := localstore.OpenBolt(cfg.LocalStorePath, log)
	if err != nil {
		log.Error("failed to open local store", zap.Error(err))
		os.Exit(1)
	}
	defer local.Close()

	// Connect to the remote document store broker. A failed connection is
	// not fatal: the daemon starts offline and serves local state.
	var remote remotestore.DocumentStore
	brokerClient, err := remotestore.Connect(remotestore.Config{
		URL:      cfg.BrokerURL,
		CAFile:   cfg.BrokerCAFile,
		CertFile: cfg.BrokerCertFile,
		KeyFile:  cfg.BrokerKeyFile,
		Token:    cfg.BrokerToken,
	}, log)
	if err != nil {
		log.Warn("broker unavailable, starting offline", zap.Error(err))
	} else {
		defer brokerClient.Close()
		remote, err = remotestore.NewKVStore(ctx, brokerClient, log)
		if err != nil {
			log.Error("failed to bind user data bucket", zap.Error(err))
			os.Exit(1)
		}
	}

	// Initialize the journal and synchronization controller
	agg := journal.New(local)
	controller := statesync.NewController(local, remote, agg, cfg.PushTimeout, log)
	controller.SetOnline(remote != nil && brokerClient.IsConnected())
	controller.InitialLoad(ctx)
	controller.Start()
	defer controller.Stop()

	// Initialize LLM client
	var llmClient llm.Client
	switch llm.Provider(cfg.DefaultLLM) {
	case llm.ProviderOpenAI:
		if cfg.OpenAIAPIKey != "" {
			llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
			if err != nil {
				log.Warn("failed to create OpenAI client, LLM features disabled", zap.Error(err))
			}
		}
	default:
		if cfg.AnthropicAPIKey != "" {
			llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
			if err != nil {
				log.Warn("failed to create Anthropic client, LLM features disabled", zap.Error(err))
			}
		}
	}
	if llmClient == nil {
		log.Warn("no LLM API key configured, message completion disabled")
	}

	// Initialize services
	chatSvc := chat.NewService(controller, llmClient, agg, nil, cfg.DefaultModel, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(brokerClient)
	conversationHandler := handler.NewConversationHandler(controller, log)
	messageHandler := handler.NewMessageHandler(chatSvc, log)
	settingsHandler := handler.NewSettingsHandler(controller, agg, log)
	syncHandler := handler.NewSyncHandler(controller, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Conversations
		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/", conversationHandler.Create)
			r.Post("/save", conversationHandler.Save)
			r.Post("/close", conversationHandler.Close)

			r.Route("/{id}", func(r chi.Router) {
				r.Post("/open", conversationHandler.Open)
				r.Put("/", conversationHandler.Rename)
				r.Delete("/", conversationHandler.Delete)
			})
		})

		// Messages operate on the active conversation
		r.Route("/messages", func(r chi.Router) {
			r.Post("/", messageHandler.Send)
			r.Post("/{index}/regenerate", messageHandler.Regenerate)
			r.Post("/{index}/explain", messageHandler.Explain)
		})

		// Profile and settings
		r.Get("/profile", settingsHandler.GetProfile)
		r.Put("/profile", settingsHandler.UpdateProfile)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/ai", settingsHandler.GetAISettings)
			r.Put("/ai", settingsHandler.UpdateAISettings)
			r.Get("/ui", settingsHandler.GetUISettings)
			r.Put("/ui", settingsHandler.UpdateUISettings)
			r.Get("/sidebar", settingsHandler.GetSidebarSettings)
			r.Put("/sidebar", settingsHandler.UpdateSidebarSettings)
			r.Get("/theme", settingsHandler.GetTheme)
			r.Put("/theme", settingsHandler.SetTheme)
			r.Put("/splash", settingsHandler.SetSplash)
		})
		r.Get("/journal", settingsHandler.GetJournal)

		// Synchronization
		r.Get("/sync", syncHandler.Status)
		r.Post("/sync", syncHandler.Trigger)
		r.Put("/sync/connectivity", syncHandler.SetConnectivity)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
