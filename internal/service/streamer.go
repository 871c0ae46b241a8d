package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

const (
	// tierMatchTolerance absorbs float representation noise when comparing a
	// donation amount against configured tier amounts. An amount one cent off
	// a tier (e.g. 5.01 against 5.00) does not match.
	tierMatchTolerance = 0.01

	maxListLimit     = 1000
	defaultListLimit = 100

	maxTiersPerStreamer = 10
)

// StreamerService provides read access to streamer profiles, tier matching,
// and profile registration.
type StreamerService struct {
	streamers domain.StreamerRepository
	validate  *ValidationService
	log       zerolog.Logger
}

// NewStreamerService creates a new StreamerService.
func NewStreamerService(streamers domain.StreamerRepository, validate *ValidationService, log zerolog.Logger) *StreamerService {
	return &StreamerService{streamers: streamers, validate: validate, log: log}
}

// GetByID fetches a streamer profile by id.
func (s *StreamerService) GetByID(ctx context.Context, id string) (*domain.Streamer, error) {
	return s.streamers.GetByID(ctx, id)
}

// GetByWallet fetches a streamer profile by receiving wallet address.
func (s *StreamerService) GetByWallet(ctx context.Context, walletAddress string) (*domain.Streamer, error) {
	return s.streamers.GetByWallet(ctx, walletAddress)
}

// List returns registered streamers. A non-positive limit falls back to the
// default; limits above the cap are clamped.
func (s *StreamerService) List(ctx context.Context, limit int) ([]domain.Streamer, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.streamers.List(ctx, limit)
}

// FindMatchingTier returns the streamer's tier whose amount equals the
// donation amount, or nil when no tier matches. There is no nearest-tier
// fallback.
func (s *StreamerService) FindMatchingTier(streamer *domain.Streamer, amountUSD float64) *domain.DonationTier {
	for i := range streamer.DonationTiers {
		tier := &streamer.DonationTiers[i]
		if math.Abs(tier.AmountUSD-amountUSD) < tierMatchTolerance {
			return tier
		}
	}
	s.log.Debug().
		Str("streamer", streamer.Name).
		Float64("amount_usd", amountUSD).
		Msg("no matching donation tier")
	return nil
}

// TierAmounts returns the streamer's configured donation amounts, in tier
// order.
func (s *StreamerService) TierAmounts(streamer *domain.Streamer) []float64 {
	amounts := make([]float64, 0, len(streamer.DonationTiers))
	for _, tier := range streamer.DonationTiers {
		amounts = append(amounts, tier.AmountUSD)
	}
	return amounts
}

// CreateStreamerInput carries the fields needed to register a new streamer.
type CreateStreamerInput struct {
	Name            string
	WalletAddress   string
	Platforms       []domain.Platform
	AvatarURL       string
	DonationTiers   []domain.DonationTier
	ThankYouMessage string
}

// Create registers a new streamer profile. The wallet address must not belong
// to an existing streamer; tier amounts must be positive and popup messages
// non-empty. The generated id is returned on the stored profile.
func (s *StreamerService) Create(ctx context.Context, in CreateStreamerInput) (*domain.Streamer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: streamer name is required", domain.ErrInvalidInput)
	}
	if !s.validate.ValidateWalletAddress(in.WalletAddress) {
		return nil, fmt.Errorf("%w: invalid wallet address %q", domain.ErrInvalidInput, in.WalletAddress)
	}
	if len(in.Platforms) == 0 {
		return nil, fmt.Errorf("%w: at least one platform is required", domain.ErrInvalidInput)
	}
	if len(in.DonationTiers) == 0 || len(in.DonationTiers) > maxTiersPerStreamer {
		return nil, fmt.Errorf("%w: between 1 and %d donation tiers required", domain.ErrInvalidInput, maxTiersPerStreamer)
	}

	tiers := make([]domain.DonationTier, len(in.DonationTiers))
	for i, tier := range in.DonationTiers {
		if tier.AmountUSD <= 0 {
			return nil, fmt.Errorf("%w: tier amount must be positive, got %v", domain.ErrInvalidInput, tier.AmountUSD)
		}
		if tier.PopupMessage == "" {
			return nil, fmt.Errorf("%w: tier popup message is required", domain.ErrInvalidInput)
		}
		if tier.DurationMS <= 0 {
			tier.DurationMS = domain.DefaultTierDurationMS
		}
		tiers[i] = tier
	}

	if _, err := s.streamers.GetByWallet(ctx, in.WalletAddress); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateWallet, in.WalletAddress)
	} else if !isNotFound(err) {
		return nil, err
	}

	streamer := &domain.Streamer{
		ID:              uuid.NewString(),
		Name:            in.Name,
		WalletAddress:   in.WalletAddress,
		Platforms:       in.Platforms,
		AvatarURL:       in.AvatarURL,
		DonationTiers:   tiers,
		ThankYouMessage: in.ThankYouMessage,
	}
	if err := s.streamers.Save(ctx, streamer); err != nil {
		return nil, fmt.Errorf("save streamer: %w", err)
	}

	s.log.Info().
		Str("streamer_id", streamer.ID).
		Str("streamer", streamer.Name).
		Int("tiers", len(streamer.DonationTiers)).
		Msg("streamer registered")
	return streamer, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
