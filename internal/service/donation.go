package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// statsScanLimit bounds the scan-and-fold behind Stats. Aggregation is
// recomputed on every call; nothing is cached.
const statsScanLimit = 10000

// DonationInput carries the donor-supplied fields of a donation claim.
type DonationInput struct {
	AmountUSD    float64
	DonorAddress string
	Message      string
	ClipURL      string
	TxHash       string
}

// DonationReceipt is returned to the caller after a donation is recorded. The
// popup fields come from the matched tier.
type DonationReceipt struct {
	DonationID   string
	PopupMessage string
	DurationMS   int
}

// DonationService orchestrates the donation workflow: validation, tier
// matching, persistence, and statistics.
type DonationService struct {
	donations domain.DonationRepository
	streamers *StreamerService
	validate  *ValidationService
	log       zerolog.Logger
}

// NewDonationService creates a new DonationService.
func NewDonationService(donations domain.DonationRepository, streamers *StreamerService, validate *ValidationService, log zerolog.Logger) *DonationService {
	return &DonationService{donations: donations, streamers: streamers, validate: validate, log: log}
}

// ProcessDonation runs the donation pipeline end-to-end: resolve the
// streamer, validate the claim, match a tier, sanitize the message, persist
// the record, and return the tier's popup configuration. The single write
// happens last; any earlier failure leaves the store untouched.
func (s *DonationService) ProcessDonation(ctx context.Context, streamerID string, in DonationInput) (*DonationReceipt, error) {
	streamer, err := s.streamers.GetByID(ctx, streamerID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("streamer %s: %w", streamerID, domain.ErrNotFound)
		}
		return nil, err
	}

	if !s.validate.ValidateWalletAddress(in.DonorAddress) {
		return nil, fmt.Errorf("%w: invalid donor address %q", domain.ErrInvalidInput, in.DonorAddress)
	}
	if !s.validate.ValidateWalletAddress(streamer.WalletAddress) {
		// A profile with a malformed wallet is a data problem, not a caller
		// problem, so it surfaces as an internal error.
		s.log.Error().
			Str("streamer_id", streamer.ID).
			Str("wallet", streamer.WalletAddress).
			Msg("streamer has invalid wallet address")
		return nil, fmt.Errorf("streamer wallet address is invalid")
	}
	if !s.validate.ValidateTxHash(in.TxHash) {
		return nil, fmt.Errorf("%w: invalid transaction hash %q", domain.ErrInvalidInput, in.TxHash)
	}

	if ok, reason := s.validate.ValidateAmountRange(in.AmountUSD); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, reason)
	}

	tier := s.streamers.FindMatchingTier(streamer, in.AmountUSD)
	if tier == nil {
		return nil, fmt.Errorf("%w: amount $%.2f does not match any tier (available: %v)",
			domain.ErrInvalidInput, in.AmountUSD, s.streamers.TierAmounts(streamer))
	}

	donation := &domain.Donation{
		ID:           uuid.NewString(),
		StreamerID:   streamerID,
		AmountUSD:    in.AmountUSD,
		DonorAddress: in.DonorAddress,
		Message:      s.validate.SanitizeMessage(in.Message),
		ClipURL:      in.ClipURL,
		TxHash:       in.TxHash,
		Timestamp:    time.Now().Unix(),
	}
	if err := s.donations.Save(ctx, donation); err != nil {
		return nil, fmt.Errorf("save donation: %w", err)
	}

	s.log.Info().
		Str("donation_id", donation.ID).
		Str("streamer", streamer.Name).
		Float64("amount_usd", donation.AmountUSD).
		Str("donor", shortAddress(donation.DonorAddress)).
		Str("tx", shortAddress(donation.TxHash)).
		Msg("donation processed")

	return &DonationReceipt{
		DonationID:   donation.ID,
		PopupMessage: tier.PopupMessage,
		DurationMS:   tier.DurationMS,
	}, nil
}

// GetByID fetches a donation record by id.
func (s *DonationService) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return s.donations.GetByID(ctx, id)
}

// ListForStreamer returns donations recorded for a streamer, most recent
// first. The limit is clamped the same way as streamer listings.
func (s *DonationService) ListForStreamer(ctx context.Context, streamerID string, limit int) ([]domain.Donation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.donations.ListByStreamer(ctx, streamerID, limit)
}

// Stats folds over all donations for a streamer and returns totals. Donor
// uniqueness is case-insensitive on the address. Fails with ErrNotFound when
// the streamer does not exist.
func (s *DonationService) Stats(ctx context.Context, streamerID string) (*domain.DonationStats, error) {
	if _, err := s.streamers.GetByID(ctx, streamerID); err != nil {
		return nil, err
	}

	donations, err := s.donations.ListByStreamer(ctx, streamerID, statsScanLimit)
	if err != nil {
		return nil, err
	}

	stats := &domain.DonationStats{DonationCount: len(donations)}
	donors := make(map[string]struct{}, len(donations))
	for _, donation := range donations {
		stats.TotalAmountUSD += donation.AmountUSD
		donors[strings.ToLower(donation.DonorAddress)] = struct{}{}
	}
	stats.UniqueDonors = len(donors)
	return stats, nil
}

func shortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}
