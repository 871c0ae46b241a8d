package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/service"
)

// In-memory repositories backing the handler tests.

type memStreamerRepo struct {
	streamers map[string]domain.Streamer
}

func newMemStreamerRepo(streamers ...domain.Streamer) *memStreamerRepo {
	r := &memStreamerRepo{streamers: make(map[string]domain.Streamer)}
	for _, s := range streamers {
		r.streamers[s.ID] = s
	}
	return r
}

func (r *memStreamerRepo) GetByID(_ context.Context, id string) (*domain.Streamer, error) {
	s, ok := r.streamers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memStreamerRepo) GetByWallet(_ context.Context, wallet string) (*domain.Streamer, error) {
	for _, s := range r.streamers {
		if strings.EqualFold(s.WalletAddress, wallet) {
			streamer := s
			return &streamer, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memStreamerRepo) List(_ context.Context, limit int) ([]domain.Streamer, error) {
	var out []domain.Streamer
	for _, s := range r.streamers {
		if len(out) >= limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *memStreamerRepo) Save(_ context.Context, s *domain.Streamer) error {
	r.streamers[s.ID] = *s
	return nil
}

func (r *memStreamerRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.streamers[id]
	return ok, nil
}

type memDonationRepo struct {
	donations []domain.Donation
}

func (r *memDonationRepo) Save(_ context.Context, d *domain.Donation) error {
	r.donations = append(r.donations, *d)
	return nil
}

func (r *memDonationRepo) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	for _, d := range r.donations {
		if d.ID == id {
			donation := d
			return &donation, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memDonationRepo) ListByStreamer(_ context.Context, streamerID string, limit int) ([]domain.Donation, error) {
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

func loganStreamer() domain.Streamer {
	return domain.Streamer{
		ID:            "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		Platforms:     []domain.Platform{domain.PlatformYouTube},
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 5.0, PopupMessage: "Amazing!", DurationMS: 5000},
		},
		ThankYouMessage: "Thanks!",
	}
}

func newTestApp(streamerRepo *memStreamerRepo, donationRepo *memDonationRepo) *App {
	validation := service.NewValidationService(0.01, 1000.0, 200)
	streamers := service.NewStreamerService(streamerRepo, validation, zerolog.Nop())
	donations := service.NewDonationService(donationRepo, streamers, validation, zerolog.Nop())
	return NewApp(streamers, donations, zerolog.Nop())
}

// withURLParams attaches chi route parameters to the request context so
// handlers can be exercised without the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
