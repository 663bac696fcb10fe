package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studio/internal/credential"
	"studio/internal/http/handlers"
	"studio/internal/http/httpapi"
	"studio/internal/infra"
	"studio/internal/providers/genai"
	"studio/internal/session"
	"studio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// The key is re-read from the environment on every call so a rotated key
	// is picked up mid-session, including between video poll iterations.
	keys := genai.KeySource(func(context.Context) (string, error) {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key, nil
		}
		return cfg.APIKey, nil
	})

	client, err := genai.NewClient(genai.Options{
		Keys:        keys,
		BaseURL:     cfg.BaseURL,
		ImageModel:  cfg.ImageModel,
		EditModel:   cfg.EditModel,
		VideoModel:  cfg.VideoModel,
		PromptModel: cfg.PromptModel,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}

	store, err := storage.NewFileStore(cfg.ExportPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare export store")
	}

	gate := credential.NewGate(credential.NewEnvHost(keys, logger), logger)
	sess := session.New(session.Options{
		Gateway:      client,
		Gate:         gate,
		Store:        store,
		Logger:       logger,
		PollInterval: cfg.VideoPollInterval,
		PollDeadline: cfg.VideoPollDeadline,
	})

	app := handlers.NewApp(sess, logger)
	router := httpapi.NewRouter(app, logger, cfg.CORSOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("studio listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
