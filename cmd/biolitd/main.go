package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/config"
	"github.com/stellarpress/biolit/internal/metrics"
	"github.com/stellarpress/biolit/internal/repository/embcache"
	"github.com/stellarpress/biolit/internal/snapshot"
	chiTransport "github.com/stellarpress/biolit/internal/transport/chi"
	openaiEmb "github.com/stellarpress/biolit/internal/transport/openai"
	analyticsuc "github.com/stellarpress/biolit/internal/usecase/analytics"
	healthuc "github.com/stellarpress/biolit/internal/usecase/health"
	searchuc "github.com/stellarpress/biolit/internal/usecase/search"
	"github.com/stellarpress/biolit/internal/version"

	logpkg "github.com/stellarpress/biolit/internal/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting biolit API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("records", cfg.Data.RecordsPath),
	)

	metrics.RegisterQueryMetrics()

	// One-time artifact load. The snapshot is immutable after this point
	// and shared by every request handler.
	snap, err := snapshot.Load(snapshot.Paths{
		Records:    cfg.Data.RecordsPath,
		Topics:     cfg.Data.TopicsPath,
		Embeddings: cfg.Data.EmbeddingsPath,
	}, cfg.Search.MaxVocabulary, logger)
	if err != nil {
		logger.Fatal("Failed to load corpus snapshot", zap.Error(err))
	}

	// The query-embedding capability is optional: without it semantic
	// ranking degrades to lexical-only.
	var embedder searchuc.Embedder
	var embHealth healthuc.EmbeddingChecker
	if cfg.Embedding.APIKey != "" {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		embedder = embcache.New(provider, cfg.Embedding.CacheSize, metrics.EmbeddingCacheTotal)
		embHealth = provider
	} else {
		logger.Warn("no embedding provider configured, semantic ranking disabled")
	}

	searchSvc := searchuc.New(snap, embedder, searchuc.Weights{
		Lexical:  cfg.Search.HybridLexicalWeight,
		Semantic: cfg.Search.HybridSemanticWeight,
	}, logger)
	analyticsSvc := analyticsuc.New(snap, analyticsuc.Limits{
		MaxCloudTerms:    cfg.Analytics.MaxCloudTerms,
		MaxNodes:         cfg.Analytics.MaxNetworkNodes,
		MaxEdges:         cfg.Analytics.MaxNetworkEdges,
		MinEdgeFrequency: cfg.Analytics.MinEdgeFrequency,
	}, logger)
	healthSvc := healthuc.New(snap, embHealth)

	server := chiTransport.NewServer(snap, searchSvc, analyticsSvc, healthSvc, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
