package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/middleware"
	"server/internal/seed"
	"server/internal/service"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := infra.OpenStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	streamerRepo := repo.NewStreamerRepository(store)
	donationRepo := repo.NewDonationRepository(store)

	validation := service.NewValidationService(cfg.MinDonationUSD, cfg.MaxDonationUSD, cfg.MaxMessageLength)
	streamers := service.NewStreamerService(streamerRepo, validation, logger)
	donations := service.NewDonationService(donationRepo, streamers, validation, logger)

	ctx := context.Background()
	if cfg.SeedMockStreamers {
		if err := seed.Streamers(ctx, streamerRepo, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo streamers")
		}
	}

	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		country = resolver.CountryCode
	}

	app := handlers.NewApp(streamers, donations, logger)
	router := httpapi.NewRouter(app, cfg, logger, country)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("network", cfg.Network).
			Int("chain_id", cfg.ChainID()).
			Msgf("API listening on :%s", cfg.Port)
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
