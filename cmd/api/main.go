package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simplitrac/backend/internal/api/handlers"
	"github.com/simplitrac/backend/internal/api/middleware"
	"github.com/simplitrac/backend/internal/classify"
	"github.com/simplitrac/backend/internal/config"
	"github.com/simplitrac/backend/internal/imagefetch"
	infra "github.com/simplitrac/backend/internal/infra/firestore"
	"github.com/simplitrac/backend/internal/logger"
	"github.com/simplitrac/backend/internal/ocr"
	"github.com/simplitrac/backend/internal/service"
)

func main() {
	port := flag.String("port", "", "HTTP server port (overrides PORT env)")
	flag.Parse()

	// Initialize logger
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != "" {
		cfg.Port = *port
	}

	// Rebuild at the configured level once config is available. The .env
	// file may set LOG_LEVEL that the initial environment did not.
	log = logger.NewWithLevel(cfg.LogLevel)

	ctx := context.Background()

	// Initialize the persistence gateway
	store, err := infra.NewStore(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create firestore store")
	}
	defer store.Close()

	// OCR provider
	extractor, err := ocr.NewVisionExtractor(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create vision client")
	}
	defer extractor.Close()

	// Optional gs:// image source, gated on a configured bucket
	var fetcher imagefetch.Fetcher
	if cfg.GCSBucket == "" {
		log.Warn().Msg("No GCS bucket configured - gs:// receipt sources disabled")
	} else {
		gcsFetcher, err := imagefetch.NewGCSFetcher(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage client")
		}
		defer gcsFetcher.Close()
		fetcher = gcsFetcher
	}

	model := cfg.GeminiModel
	if model == "" {
		model = classify.DefaultModelName
	}
	classifier := classify.NewGeminiClassifier(model)

	// Services
	userService := service.NewUserService(store, log)
	receiptService := service.NewReceiptService(extractor, classifier, fetcher, store, store, log)

	// Handlers
	usersHandler := handlers.NewUsersHandler(userService, log)
	receiptsHandler := handlers.NewReceiptsHandler(receiptService, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/user/create", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			usersHandler.CreateUser(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/user/get", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			usersHandler.GetUser(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/user/update", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			usersHandler.UpdateUser(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/user/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			usersHandler.DeleteUser(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/transactions/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			usersHandler.DeleteAllTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/category/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			usersHandler.DeleteCategory(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/process-receipt", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			receiptsHandler.ProcessReceipt(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/healthz", handlers.Healthz)

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
