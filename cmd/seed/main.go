package main

import (
	"context"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/infra"
	"server/internal/seed"
)

// Standalone seeder: loads the demo streamer profiles into the store and
// exits. Useful when the API runs with SEED_MOCK_STREAMERS=false.
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

	if err := seed.Streamers(context.Background(), repo.NewStreamerRepository(store), logger); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Msg("demo streamers seeded")
}
