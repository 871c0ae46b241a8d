// Package seed provides the demo streamer profiles loaded at startup so the
// donation flow can be exercised without a registration step.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

var streamers = []domain.Streamer{
	{
		ID:            "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		Platforms:     []domain.Platform{domain.PlatformYouTube, domain.PlatformTwitch},
		AvatarURL:     "https://avatar.iran.liara.run/public/42",
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 1.0, PopupMessage: "Thank you! 💙", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "Amazing support! 🎉", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "You're a legend! 🌟", DurationMS: 8000},
			{AmountUSD: 50.0, PopupMessage: "INSANE DONATION! 🔥🔥🔥", DurationMS: 10000},
		},
		ThankYouMessage: "Thanks for supporting my stream! Your donation helps me create better content. See you in the next stream! 🎮",
	},
	{
		ID:            "b2c3d4e5-f6a7-4b89-c012-defabcde3456",
		Name:          "Kim",
		WalletAddress: "0x8765432109fedcba8765432109fedcba87654321",
		Platforms:     []domain.Platform{domain.PlatformTwitch},
		AvatarURL:     "https://avatar.iran.liara.run/public/88",
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 2.0, PopupMessage: "감사합니다! 🙏", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "대박! 🎊", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "핵인싸! 😎", DurationMS: 7000},
		},
		ThankYouMessage: "후원 감사합니다! 더 좋은 방송으로 보답하겠습니다! ❤️",
	},
	{
		ID:            "c3d4e5f6-a7b8-4c90-d123-efabcdef4567",
		Name:          "Alex",
		WalletAddress: "0xabcdef1234567890abcdef1234567890abcdef12",
		Platforms:     []domain.Platform{domain.PlatformYouTube},
		AvatarURL:     "https://avatar.iran.liara.run/public/15",
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 3.0, PopupMessage: "Much appreciated! 🙌", DurationMS: 3000},
			{AmountUSD: 7.0, PopupMessage: "You're awesome! ✨", DurationMS: 5000},
			{AmountUSD: 15.0, PopupMessage: "MVP! 👑", DurationMS: 8000},
		},
		ThankYouMessage: "Thank you so much for the donation! It really means a lot. Let's keep building together! 🚀",
	},
}

// Streamers applies the demo profiles to the repository. Profiles that
// already exist are left untouched, so reseeding on every startup is safe.
func Streamers(ctx context.Context, repo domain.StreamerRepository, log zerolog.Logger) error {
	for i := range streamers {
		streamer := streamers[i]
		exists, err := repo.Exists(ctx, streamer.ID)
		if err != nil {
			return fmt.Errorf("check streamer %s: %w", streamer.Name, err)
		}
		if exists {
			log.Debug().Str("streamer", streamer.Name).Msg("demo streamer already present")
			continue
		}
		if err := repo.Save(ctx, &streamer); err != nil {
			return fmt.Errorf("seed streamer %s: %w", streamer.Name, err)
		}
		log.Info().Str("streamer", streamer.Name).Str("streamer_id", streamer.ID).Msg("seeded demo streamer")
	}
	return nil
}
