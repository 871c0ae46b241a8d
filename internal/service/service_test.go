package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type fakeStreamerRepo struct {
	streamers map[string]domain.Streamer
	saveErr   error
}

func newFakeStreamerRepo(streamers ...domain.Streamer) *fakeStreamerRepo {
	r := &fakeStreamerRepo{streamers: make(map[string]domain.Streamer)}
	for _, s := range streamers {
		r.streamers[s.ID] = s
	}
	return r
}

func (r *fakeStreamerRepo) GetByID(_ context.Context, id string) (*domain.Streamer, error) {
	s, ok := r.streamers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeStreamerRepo) GetByWallet(_ context.Context, wallet string) (*domain.Streamer, error) {
	for _, s := range r.streamers {
		if strings.EqualFold(s.WalletAddress, wallet) {
			streamer := s
			return &streamer, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeStreamerRepo) List(_ context.Context, limit int) ([]domain.Streamer, error) {
	var out []domain.Streamer
	for _, s := range r.streamers {
		if len(out) >= limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStreamerRepo) Save(_ context.Context, s *domain.Streamer) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.streamers[s.ID] = *s
	return nil
}

func (r *fakeStreamerRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.streamers[id]
	return ok, nil
}

type fakeDonationRepo struct {
	donations []domain.Donation
	saveErr   error
}

func (r *fakeDonationRepo) Save(_ context.Context, d *domain.Donation) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.donations = append(r.donations, *d)
	return nil
}

func (r *fakeDonationRepo) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	for _, d := range r.donations {
		if d.ID == id {
			donation := d
			return &donation, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDonationRepo) ListByStreamer(_ context.Context, streamerID string, limit int) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range r.donations {
		if d.StreamerID != streamerID {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

func testLogan() domain.Streamer {
	return domain.Streamer{
		ID:            "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		Platforms:     []domain.Platform{domain.PlatformYouTube},
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 1.0, PopupMessage: "Thank you! 💙", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "Amazing!", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "You're a legend! 🌟", DurationMS: 8000},
		},
		ThankYouMessage: "Thanks for watching!",
	}
}

func testServices(streamerRepo *fakeStreamerRepo, donationRepo *fakeDonationRepo) (*StreamerService, *DonationService) {
	validation := NewValidationService(0.01, 1000.0, 200)
	streamers := NewStreamerService(streamerRepo, validation, zerolog.Nop())
	donations := NewDonationService(donationRepo, streamers, validation, zerolog.Nop())
	return streamers, donations
}
