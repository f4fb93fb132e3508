package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-chat-service/internal/config"
	aiAdapters "ai-chat-service/internal/infra/adapters/ai"
	pg "ai-chat-service/internal/infra/db/postgres"
	"ai-chat-service/internal/infra/logging"
	"ai-chat-service/internal/infra/metrics"
	red "ai-chat-service/internal/infra/redis"
	"ai-chat-service/internal/infra/web"
	"ai-chat-service/internal/usecase"

	"ai-chat-service/internal/domain/ports/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, mock AI fallback)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	// ---- Redis (optional cache) ----
	var cache *red.SessionCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable; running without session cache")
		} else {
			defer redisClient.Close()
			cache = red.NewSessionCache(redisClient, cfg.Redis.TTL)
		}
	}

	// ---- Repositories ----
	sessionRepo := pg.NewSessionRepo(pool, cache)

	// ---- AI responder (Gemini -> OpenAI -> mock in dev) ----
	var responder adapter.AIResponder
	switch {
	case cfg.AI.GeminiKey != "":
		responder, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI responder: Gemini")
	case cfg.AI.OpenAIKey != "":
		responder, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.OpenAIURL, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI responder: OpenAI")
	case cfg.Runtime.Dev:
		responder = aiAdapters.NewMockAdapter(cfg.AI.FailureRate)
		logger.Info().Msg("AI responder: mock (dev mode)")
	default:
		logger.Fatal().Msg("no AI provider configured: set ai.gemini_key or ai.openai_key, or run with -dev")
	}

	// ---- Use cases ----
	sessionUC := usecase.NewSessionUseCase(sessionRepo)
	sendUC := usecase.NewSendMessageUseCase(sessionRepo, responder, logger)

	// ---- HTTP ----
	srv := web.NewServer(sessionUC, sendUC, responder, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
