package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	relay "github.com/chat-relay/chat-relay/relay"
	"github.com/chat-relay/chat-relay/relay/chat"
	"github.com/chat-relay/chat-relay/relay/chat/adapters"
	"github.com/chat-relay/chat-relay/relay/config"
	"github.com/chat-relay/chat-relay/relay/db"
	"github.com/chat-relay/chat-relay/relay/transport/httpserver"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg.Log)

	conn, err := db.Connect(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer conn.Close()

	store, err := adapters.NewLibSQLMessageStore(conn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize message store")
	}

	provider, err := adapters.NewOpenAIProvider(adapters.OpenAIProviderConfig{
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		Model:        cfg.LLM.Model,
		MaxNewTokens: cfg.LLM.MaxNewTokens,
		Temperature:  cfg.LLM.Temperature,
	}, chat.UserOnlyPrompt)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize completion provider")
	}

	orchestrator := chat.NewOrchestrator(store, provider, adapters.NewTracer(cfg.Log.Tracing, logger), relay.DefaultSessionID)

	handler := httpserver.RequestLogger(logger, (&httpserver.Server{Chat: orchestrator}).Handler())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// serve errors come back over the channel so deferred cleanup still runs
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("model", cfg.LLM.Model).Msg("chat-relay listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
		}
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
