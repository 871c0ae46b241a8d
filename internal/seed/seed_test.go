package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

type recordingRepo struct {
	existing map[string]bool
	saved    []string
}

func (r *recordingRepo) GetByID(context.Context, string) (*domain.Streamer, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingRepo) GetByWallet(context.Context, string) (*domain.Streamer, error) {
	return nil, domain.ErrNotFound
}

func (r *recordingRepo) List(context.Context, int) ([]domain.Streamer, error) {
	return nil, nil
}

func (r *recordingRepo) Save(_ context.Context, s *domain.Streamer) error {
	r.existing[s.ID] = true
	r.saved = append(r.saved, s.Name)
	return nil
}

func (r *recordingRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.existing[id], nil
}

func TestStreamersSeedsAllProfilesOnce(t *testing.T) {
	repo := &recordingRepo{existing: make(map[string]bool)}
	ctx := context.Background()

	if err := Streamers(ctx, repo, zerolog.Nop()); err != nil {
		t.Fatalf("Streamers: %v", err)
	}
	if len(repo.saved) != 3 {
		t.Fatalf("expected 3 seeded streamers, got %d (%v)", len(repo.saved), repo.saved)
	}

	// Reseeding is a no-op.
	if err := Streamers(ctx, repo, zerolog.Nop()); err != nil {
		t.Fatalf("Streamers (second run): %v", err)
	}
	if len(repo.saved) != 3 {
		t.Fatalf("reseed wrote %d extra records", len(repo.saved)-3)
	}
}

func TestSeedProfilesAreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, streamer := range streamers {
		if streamer.ID == "" || streamer.Name == "" {
			t.Fatalf("seed profile missing identity: %+v", streamer)
		}
		if seen[streamer.WalletAddress] {
			t.Fatalf("duplicate wallet in seed data: %s", streamer.WalletAddress)
		}
		seen[streamer.WalletAddress] = true
		if len(streamer.DonationTiers) == 0 {
			t.Fatalf("seed profile %s has no tiers", streamer.Name)
		}
		for _, tier := range streamer.DonationTiers {
			if tier.AmountUSD <= 0 || tier.PopupMessage == "" || tier.DurationMS <= 0 {
				t.Fatalf("seed profile %s has malformed tier: %+v", streamer.Name, tier)
			}
		}
	}
}
