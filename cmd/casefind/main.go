package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/config"
	"github.com/casefind/casefind/internal/domain"
	logpkg "github.com/casefind/casefind/internal/logger"
	"github.com/casefind/casefind/internal/metrics"
	"github.com/casefind/casefind/internal/repository/catalog"
	"github.com/casefind/casefind/internal/repository/embedding"
	"github.com/casefind/casefind/internal/repository/resultcache"
	chiTransport "github.com/casefind/casefind/internal/transport/chi"
	openaiVec "github.com/casefind/casefind/internal/transport/openai"
	analyticsuc "github.com/casefind/casefind/internal/usecase/analytics"
	healthuc "github.com/casefind/casefind/internal/usecase/health"
	"github.com/casefind/casefind/internal/usecase/highlight"
	"github.com/casefind/casefind/internal/usecase/keyword"
	searchuc "github.com/casefind/casefind/internal/usecase/search"
	suggestuc "github.com/casefind/casefind/internal/usecase/suggest"
	"github.com/casefind/casefind/internal/usecase/vectorize"
	"github.com/casefind/casefind/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting casefind API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_dir", cfg.Catalog.Dir),
		zap.String("vectorizer", cfg.Vectorizer.Provider),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterVectorizerMetrics()

	// Load scenario catalog from disk
	provider, err := catalog.LoadDir(cfg.Catalog.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to load scenario catalog", zap.Error(err))
	}

	ctx := context.Background()
	scenarios, err := provider.All(ctx)
	if err != nil {
		logger.Fatal("Failed to read scenario catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Int("scenarios", len(scenarios)))

	// Build vectorizer chain — composition root
	vectorizer, vecChecker := buildVectorizer(cfg.Vectorizer, logger)
	batch, err := vectorize.NewBatch(vectorizer, cfg.Vectorizer.PoolSize)
	if err != nil {
		logger.Fatal("Failed to create batch vectorizer", zap.Error(err))
	}
	defer batch.Release()

	// Embedding store: ingest a precomputed dump or index at startup
	store, err := embedding.NewStore(cfg.Vectorizer.Dimensions)
	if err != nil {
		logger.Fatal("Failed to create embedding store", zap.Error(err))
	}
	if cfg.Catalog.EmbeddingsFile != "" {
		data, err := os.ReadFile(cfg.Catalog.EmbeddingsFile)
		if err != nil {
			logger.Fatal("Failed to read embeddings file", zap.Error(err))
		}
		if err := store.Ingest(data); err != nil {
			logger.Fatal("Failed to ingest embeddings", zap.Error(err))
		}
		logger.Info("Embeddings ingested",
			zap.String("file", cfg.Catalog.EmbeddingsFile),
			zap.Int("records", store.Len()),
		)
	} else if err := store.IndexCatalog(ctx, batch, scenarios, logger); err != nil {
		// The keyword path still works with an empty index.
		logger.Warn("Catalog indexing failed, semantic search disabled", zap.Error(err))
	}

	// Shared state: cache and analytics
	cache := resultcache.New(
		time.Duration(cfg.Cache.TTLSec)*time.Second,
		cfg.Cache.MaxEntries,
		cfg.Cache.LowWater,
	)
	recorder := analyticsuc.New()

	// Create use case services
	searchSvc := searchuc.New(
		provider,
		store,
		vectorizer,
		keyword.New(cfg.Search.TitleBoost, cfg.Search.KeywordBoost),
		highlight.New("", ""),
		cache,
		recorder,
		logger,
	).WithTuning(cfg.Search.MinSimilarity, cfg.Search.TopK)

	suggestSvc := suggestuc.New(provider, recorder, cfg.Suggest.CommonPhrases, logger)

	healthSvc := healthuc.New(provider, vecChecker)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, suggestSvc, recorder, provider, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildVectorizer assembles the chain: provider -> Instrumented. The
// second return is a health probe; the local provider has none.
func buildVectorizer(
	cfg config.VectorizerConfig, logger *zap.Logger,
) (domain.Vectorizer, healthuc.VectorizerChecker) {
	var base domain.Vectorizer
	var checker healthuc.VectorizerChecker

	switch cfg.Provider {
	case "openai":
		v := openaiVec.NewVectorizer(&openaiVec.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Provider:   cfg.Provider,
			Logger:     logger,
		})
		base, checker = v, v
	default:
		base = vectorize.NewHashingVectorizer(cfg.Dimensions)
	}

	return vectorize.NewInstrumented(base, cfg.Provider, logger), checker
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
