package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"convertify/internal/auth"
	"convertify/internal/catalog"
	"convertify/internal/config"
	"convertify/internal/domain/repositories"
	"convertify/internal/domain/services"
	"convertify/internal/handler"
	"convertify/internal/middleware"
	"convertify/internal/repository/bolt"
	"convertify/internal/repository/postgres"
	"convertify/internal/service"
	"convertify/internal/service/converter"
	"convertify/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.OpenLogFile(cfg.LogDir, "server", time.Now())
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if cfg.LogDir != "" {
		removed, err := config.PruneLogs(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			logger.Warn("failed to prune old log files", "dir", cfg.LogDir, "error", err)
		}
		if len(removed) > 0 {
			logger.Debug("pruned old log files", "count", len(removed))
		}
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"record_store", cfg.RecordStore,
		"storage_driver", cfg.StorageDriver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Token verification is optional; without it every request is anonymous
	verifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	if verifier != nil {
		defer verifier.Close()
	}

	records, err := openRecords(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer records.Close()

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load format catalog: %v", err)
	}

	objects, local, err := openStorage(cfg, registry, logger)
	if err != nil {
		log.Fatalf("Failed to create object storage: %v", err)
	}

	dispatcher := converter.NewDispatcher(converter.Config{
		SofficePath:     cfg.SofficePath,
		HeifEncoderPath: cfg.HeifEncoderPath,
		ScratchRoot:     cfg.ScratchDir,
	}, logger)

	conversionService := service.NewConversionService(dispatcher, objects, records, service.ConversionConfig{
		Folder:  cfg.StorageFolder,
		Timeout: cfg.ConversionTimeout,
	}, logger)

	conversionHandler := handler.NewConversionHandler(conversionService, cfg.MaxUploadBytes, logger)
	formatsHandler := handler.NewFormatsHandler(registry)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /status", handler.Status)

	mux.HandleFunc("POST /api/file/convertAndUpload", conversionHandler.ConvertAndUpload)
	mux.HandleFunc("GET /api/conversions", conversionHandler.ListConversions)
	mux.HandleFunc("GET /api/formats", formatsHandler.ListFormats)

	if local != nil {
		mux.Handle("GET "+storage.FilesPrefix, local.Handler())
	}

	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.OptionalAuth(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.ConversionTimeout + time.Minute, // Slowest conversion plus upload
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newVerifier prefers the shared HMAC secret, then JWKS. Neither set means nil.
func newVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.TokenVerifier, error) {
	switch {
	case cfg.JWTSecret != "":
		logger.Info("token verification enabled", "mode", "hmac")
		return auth.NewHMACVerifier(cfg.JWTSecret, logger)
	case cfg.JWKSURL != "":
		return auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
	default:
		logger.Warn("no AUTH_JWT_SECRET or AUTH_JWKS_URL set; all requests are anonymous")
		return nil, nil
	}
}

func openRecords(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.ConversionRepository, error) {
	switch cfg.RecordStore {
	case config.RecordStorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewConversionRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
		return repo, nil
	case config.RecordStoreBolt:
		repo, err := bolt.Open(cfg.BoltPath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("bolt record store opened", "path", cfg.BoltPath)
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown RECORD_STORE %q", cfg.RecordStore)
	}
}

// openStorage returns the configured store; local is non-nil only for the
// local driver, whose files the server also serves.
func openStorage(cfg *config.Config, registry *catalog.Registry, logger *slog.Logger) (services.ObjectStorage, *storage.LocalStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageCloudinary:
		store, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, logger)
		return store, nil, err
	case config.StorageLocal:
		store, err := storage.NewLocalStorage(cfg.LocalStorageDir, cfg.PublicBaseURL, registry, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
