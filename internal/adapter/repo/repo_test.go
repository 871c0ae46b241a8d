package repo

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	bolt "go.etcd.io/bbolt"

	"server/internal/domain"
	"server/internal/infra"
)

func openTestStore(t *testing.T) *bolt.DB {
	t.Helper()
	cfg := &infra.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := infra.OpenStore(cfg)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testStreamer() *domain.Streamer {
	return &domain.Streamer{
		ID:            "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		Platforms:     []domain.Platform{domain.PlatformYouTube, domain.PlatformTwitch},
		AvatarURL:     "https://example.com/logan.png",
		DonationTiers: []domain.DonationTier{
			{AmountUSD: 1.0, PopupMessage: "Thank you! 💙", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "Amazing support! 🎉", DurationMS: 5000},
		},
		ThankYouMessage: "Thanks for watching!",
	}
}

func TestStreamerSaveAndGetByID(t *testing.T) {
	db := openTestStore(t)
	r := NewStreamerRepository(db)
	ctx := context.Background()

	streamer := testStreamer()
	if err := r.Save(ctx, streamer); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := r.GetByID(ctx, streamer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !reflect.DeepEqual(got, streamer) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, streamer)
	}
}

func TestStreamerGetByIDNotFound(t *testing.T) {
	db := openTestStore(t)
	r := NewStreamerRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStreamerGetByWallet(t *testing.T) {
	db := openTestStore(t)
	r := NewStreamerRepository(db)
	ctx := context.Background()

	streamer := testStreamer()
	if err := r.Save(ctx, streamer); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Wallet lookups are case-insensitive.
	for _, addr := range []string{
		streamer.WalletAddress,
		"0X742D35CC6634C0532925A3B844BC9E7595F0BEB0",
		"0x742d35cc6634c0532925a3b844bc9e7595f0beb0",
	} {
		got, err := r.GetByWallet(ctx, addr)
		if err != nil {
			t.Fatalf("GetByWallet(%q): %v", addr, err)
		}
		if got.ID != streamer.ID {
			t.Fatalf("GetByWallet(%q) = %q, want %q", addr, got.ID, streamer.ID)
		}
	}

	if _, err := r.GetByWallet(ctx, "0x0000000000000000000000000000000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown wallet, got %v", err)
	}
}

func TestStreamerListAndExists(t *testing.T) {
	db := openTestStore(t)
	r := NewStreamerRepository(db)
	ctx := context.Background()

	first := testStreamer()
	second := testStreamer()
	second.ID = "b2c3d4e5-f6a7-4b89-c012-defabcde3456"
	second.Name = "Kim"
	second.WalletAddress = "0x8765432109fedcba8765432109fedcba87654321"

	for _, s := range []*domain.Streamer{first, second} {
		if err := r.Save(ctx, s); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := r.List(ctx, 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d streamers, want 2", len(all))
	}

	limited, err := r.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("List(1) returned %d streamers, want 1", len(limited))
	}

	ok, err := r.Exists(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("Exists(%q) = %v, %v", first.ID, ok, err)
	}
	ok, err = r.Exists(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
}

func TestDonationSaveAndGetByID(t *testing.T) {
	db := openTestStore(t)
	r := NewDonationRepository(db)
	ctx := context.Background()

	donation := &domain.Donation{
		ID:           "d1e2f3a4-b5c6-7890-abcd-ef1234567890",
		StreamerID:   "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		AmountUSD:    5.0,
		DonorAddress: "0x1234567890abcdef1234567890abcdef12345678",
		Message:      "Great stream!",
		TxHash:       "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
		Timestamp:    1700000000,
	}
	if err := r.Save(ctx, donation); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := r.GetByID(ctx, donation.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !reflect.DeepEqual(got, donation) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, donation)
	}
}

func TestDonationGetByIDNotFound(t *testing.T) {
	db := openTestStore(t)
	r := NewDonationRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDonationListByStreamer(t *testing.T) {
	db := openTestStore(t)
	r := NewDonationRepository(db)
	ctx := context.Background()

	streamerID := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	donations := []domain.Donation{
		{ID: "d1", StreamerID: streamerID, AmountUSD: 1.0, DonorAddress: "0x1111111111111111111111111111111111111111", TxHash: "0x01", Timestamp: 100},
		{ID: "d2", StreamerID: streamerID, AmountUSD: 5.0, DonorAddress: "0x2222222222222222222222222222222222222222", TxHash: "0x02", Timestamp: 300},
		{ID: "d3", StreamerID: "other", AmountUSD: 10.0, DonorAddress: "0x3333333333333333333333333333333333333333", TxHash: "0x03", Timestamp: 200},
		{ID: "d4", StreamerID: streamerID, AmountUSD: 10.0, DonorAddress: "0x4444444444444444444444444444444444444444", TxHash: "0x04", Timestamp: 200},
	}
	for i := range donations {
		if err := r.Save(ctx, &donations[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := r.ListByStreamer(ctx, streamerID, 100)
	if err != nil {
		t.Fatalf("ListByStreamer: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByStreamer returned %d donations, want 3", len(got))
	}
	// Most recent first.
	wantOrder := []string{"d2", "d4", "d1"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("order[%d] = %q, want %q", i, got[i].ID, id)
		}
	}

	limited, err := r.ListByStreamer(ctx, streamerID, 2)
	if err != nil {
		t.Fatalf("ListByStreamer: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "d2" {
		t.Fatalf("limited list mismatch: %+v", limited)
	}
}

func TestWalletIndexFollowsLatestSave(t *testing.T) {
	db := openTestStore(t)
	r := NewStreamerRepository(db)
	ctx := context.Background()

	streamer := testStreamer()
	if err := r.Save(ctx, streamer); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Re-saving with a different wallet must index the new address.
	streamer.WalletAddress = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	if err := r.Save(ctx, streamer); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := r.GetByWallet(ctx, streamer.WalletAddress)
	if err != nil {
		t.Fatalf("GetByWallet: %v", err)
	}
	if got.ID != streamer.ID {
		t.Fatalf("GetByWallet = %q, want %q", got.ID, streamer.ID)
	}
}
