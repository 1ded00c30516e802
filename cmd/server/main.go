package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Totanopti/gocomapare-2/config"
	httpDelivery "github.com/Totanopti/gocomapare-2/internal/delivery/http"
	"github.com/Totanopti/gocomapare-2/internal/infrastructure/keepa"
	"github.com/Totanopti/gocomapare-2/internal/infrastructure/optisage"
	"github.com/Totanopti/gocomapare-2/internal/metrics"
	"github.com/Totanopti/gocomapare-2/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg)

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting gocompare backend v1.1.1")

	// Infrastructure clients
	catalogClient := keepa.NewClient(cfg.Keepa.APIKey, cfg.Keepa.BaseURL)
	eligibilityClient := optisage.NewClient(cfg.OptiSage.Token, cfg.OptiSage.BaseURL)
	m := metrics.New()

	categoryResolver, err := usecase.NewCategoryResolver(catalogClient, cfg.Analysis.CategoryCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create category resolver")
	}

	analyzer := usecase.NewAnalyzer(
		catalogClient,
		eligibilityClient,
		categoryResolver,
		m,
		usecase.AnalyzerConfig{MaxProducts: cfg.Analysis.MaxProducts},
	)

	log.Info().
		Str("keepa_base_url", cfg.Keepa.BaseURL).
		Str("optisage_base_url", cfg.OptiSage.BaseURL).
		Int("max_products", cfg.Analysis.MaxProducts).
		Msg("analyzer configured")

	handler := httpDelivery.NewHandler(analyzer)
	router := httpDelivery.SetupRouter(cfg, handler, m)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// setupLogging configures the global zerolog logger from config
func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Server.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
