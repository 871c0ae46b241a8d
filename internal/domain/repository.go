package domain

import "context"

// StreamerRepository defines access methods for streamer profiles.
type StreamerRepository interface {
	GetByID(ctx context.Context, id string) (*Streamer, error)
	GetByWallet(ctx context.Context, walletAddress string) (*Streamer, error)
	List(ctx context.Context, limit int) ([]Streamer, error)
	Save(ctx context.Context, streamer *Streamer) error
	Exists(ctx context.Context, id string) (bool, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Save(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	ListByStreamer(ctx context.Context, streamerID string, limit int) ([]Donation, error)
}
