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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/config"
	"github.com/kailas-cloud/propbot/internal/db"
	dbRedis "github.com/kailas-cloud/propbot/internal/db/redis"
	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/domain/relevance"
	logpkg "github.com/kailas-cloud/propbot/internal/logger"
	"github.com/kailas-cloud/propbot/internal/metrics"
	"github.com/kailas-cloud/propbot/internal/repository/embcache"
	sessionrepo "github.com/kailas-cloud/propbot/internal/repository/session"
	"github.com/kailas-cloud/propbot/internal/repository/vectorstore"
	chiTransport "github.com/kailas-cloud/propbot/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/propbot/internal/transport/openai"
	"github.com/kailas-cloud/propbot/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/propbot/internal/usecase/health"
	"github.com/kailas-cloud/propbot/internal/usecase/retrieval"
	"github.com/kailas-cloud/propbot/internal/version"
)

func main() {
	// .env for local development; ignored when absent
	_ = godotenv.Load()

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

	logger.Info("Starting propbot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("chroma_url", cfg.VectorStore.BaseURL),
		zap.String("session_backend", cfg.Session.Backend),
	)

	ctx := context.Background()

	// Optional Redis/Valkey store backing the embedding cache and the
	// durable session backend.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	chroma, err := vectorstore.New(cfg.VectorStore.BaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to create vector store client", zap.Error(err))
	}
	defer func() { _ = chroma.Close() }()

	embedder, healthChecker := buildEmbedder(cfg, store, logger)
	logger.Info("Embedder created", zap.String("model", cfg.Embedding.Model))

	completer := openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Logger:      logger,
	})

	sessions := buildSessionStore(cfg, store, logger)

	retriever := retrieval.NewService(
		embedder,
		chroma,
		cfg.VectorStore.TopK,
		cfg.VectorStore.MaxResults,
		time.Duration(cfg.VectorStore.QueryTimeoutSec)*time.Second,
		logger,
	)

	normalizer := relevance.NewNormalizer(metricRegistry(cfg.VectorStore.Metrics))

	chatSvc := chat.NewService(sessions, retriever, completer, normalizer, cfg.Completion.SystemPrompt, logger)
	healthSvc := healthuc.NewService(chroma, healthChecker, logger)

	server := chiTransport.NewServer(chatSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// buildEmbedder assembles the embedder chain: OpenAI -> Cached (when a
// KV store is configured). The base embedder also serves health checks.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) (domain.Embedder, domain.HealthChecker) {
	base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Logger:  logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(
			base,
			store,
			cfg.Database.KeyPrefix,
			time.Duration(cfg.Embedding.CacheTTL)*time.Second,
			metrics.EmbeddingCacheTotal,
			logger,
		)
	}
	return embedder, base
}

// buildSessionStore selects the configured session backend.
func buildSessionStore(cfg config.Config, store db.Store, logger *zap.Logger) chat.SessionStore {
	ttl := time.Duration(cfg.Session.TTLSec) * time.Second

	if cfg.Session.Backend == "redis" {
		if store == nil {
			logger.Fatal("Redis session backend requires database.addrs")
		}
		logger.Info("Using Redis session store", zap.Duration("ttl", ttl))
		return sessionrepo.NewRedisStore(store, cfg.Database.KeyPrefix, ttl)
	}

	logger.Info("Using in-memory session store",
		zap.Duration("ttl", ttl),
		zap.Int("max_sessions", cfg.Session.MaxSessions))
	return sessionrepo.NewMemoryStore(ttl, cfg.Session.MaxSessions)
}

func metricRegistry(raw map[string]string) map[string]relevance.Metric {
	out := make(map[string]relevance.Metric, len(raw))
	for name, metric := range raw {
		out[name] = relevance.Metric(metric)
	}
	return out
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
