package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/aadikrishna04/Devfest-CU/internal/config"
	"github.com/aadikrishna04/Devfest-CU/internal/core/vision"
	h "github.com/aadikrishna04/Devfest-CU/internal/http"
	"github.com/aadikrishna04/Devfest-CU/internal/repo/sessionlog"
	"github.com/aadikrishna04/Devfest-CU/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if _, err := telemetry.InitLogger(cfg.LogDir); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_, meter, cleanup, err := telemetry.InitTelemetry(ctx, cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	metrics, err := telemetry.NewMetrics(meter)
	if err != nil {
		log.Fatal(err)
	}

	store, err := sessionlog.OpenStore(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var analyzer vision.Analyzer
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, scene updates disabled")
	} else if g, err := vision.New(cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		slog.Warn("vision analyzer unavailable, scene updates disabled", "error", err)
	} else {
		analyzer = g
	}

	r := h.NewRouter(cfg, store, analyzer, metrics)
	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
