package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"server/internal/domain"
	"server/internal/infra"
)

// streamerRecord is the stored JSON form of a domain.Streamer.
type streamerRecord struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	WalletAddress   string       `json:"wallet_address"`
	Platforms       []string     `json:"platforms"`
	AvatarURL       string       `json:"avatar_url,omitempty"`
	DonationTiers   []tierRecord `json:"donation_tiers"`
	ThankYouMessage string       `json:"thank_you_message"`
}

type tierRecord struct {
	AmountUSD    float64 `json:"amount_usd"`
	PopupMessage string  `json:"popup_message"`
	DurationMS   int     `json:"duration_ms"`
}

// StreamerRepositoryBolt implements domain.StreamerRepository backed by bbolt.
type StreamerRepositoryBolt struct {
	db *bolt.DB
}

// NewStreamerRepository creates a new StreamerRepositoryBolt.
func NewStreamerRepository(db *bolt.DB) *StreamerRepositoryBolt {
	return &StreamerRepositoryBolt{db: db}
}

// Save writes the streamer record and its wallet index entry in a single
// transaction, so the index can never diverge from the primary record.
func (r *StreamerRepositoryBolt) Save(ctx context.Context, streamer *domain.Streamer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(encodeStreamer(streamer))
	if err != nil {
		return fmt.Errorf("encode streamer %s: %w", streamer.ID, err)
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(infra.BucketStreamers).Put([]byte(streamer.ID), value); err != nil {
			return fmt.Errorf("put streamer %s: %w", streamer.ID, err)
		}
		indexKey := []byte(strings.ToLower(streamer.WalletAddress))
		if err := tx.Bucket(infra.BucketWalletIndex).Put(indexKey, []byte(streamer.ID)); err != nil {
			return fmt.Errorf("put wallet index for %s: %w", streamer.ID, err)
		}
		return nil
	})
}

// GetByID fetches a streamer by its opaque identifier.
func (r *StreamerRepositoryBolt) GetByID(ctx context.Context, id string) (*domain.Streamer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var streamer *domain.Streamer
	err := r.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(infra.BucketStreamers).Get([]byte(id))
		if value == nil {
			return domain.ErrNotFound
		}
		var err error
		streamer, err = decodeStreamer(value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return streamer, nil
}

// GetByWallet resolves a streamer through the wallet index. Lookups are
// case-insensitive; index keys are stored lowercased.
func (r *StreamerRepositoryBolt) GetByWallet(ctx context.Context, walletAddress string) (*domain.Streamer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var streamer *domain.Streamer
	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(infra.BucketWalletIndex).Get([]byte(strings.ToLower(walletAddress)))
		if id == nil {
			return domain.ErrNotFound
		}
		value := tx.Bucket(infra.BucketStreamers).Get(id)
		if value == nil {
			return domain.ErrNotFound
		}
		var err error
		streamer, err = decodeStreamer(value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return streamer, nil
}

// List returns up to limit streamers in key order.
func (r *StreamerRepositoryBolt) List(ctx context.Context, limit int) ([]domain.Streamer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var streamers []domain.Streamer
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(infra.BucketStreamers).Cursor()
		for k, v := c.First(); k != nil && len(streamers) < limit; k, v = c.Next() {
			streamer, err := decodeStreamer(v)
			if err != nil {
				return err
			}
			streamers = append(streamers, *streamer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return streamers, nil
}

// Exists reports whether a streamer record is present for the given id.
func (r *StreamerRepositoryBolt) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var exists bool
	err := r.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(infra.BucketStreamers).Get([]byte(id)) != nil
		return nil
	})
	return exists, err
}

func encodeStreamer(streamer *domain.Streamer) streamerRecord {
	record := streamerRecord{
		ID:              streamer.ID,
		Name:            streamer.Name,
		WalletAddress:   streamer.WalletAddress,
		AvatarURL:       streamer.AvatarURL,
		ThankYouMessage: streamer.ThankYouMessage,
	}
	for _, platform := range streamer.Platforms {
		record.Platforms = append(record.Platforms, string(platform))
	}
	for _, tier := range streamer.DonationTiers {
		record.DonationTiers = append(record.DonationTiers, tierRecord(tier))
	}
	return record
}

func decodeStreamer(value []byte) (*domain.Streamer, error) {
	var record streamerRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, fmt.Errorf("decode streamer record: %w", err)
	}
	streamer := &domain.Streamer{
		ID:              record.ID,
		Name:            record.Name,
		WalletAddress:   record.WalletAddress,
		AvatarURL:       record.AvatarURL,
		ThankYouMessage: record.ThankYouMessage,
	}
	for _, platform := range record.Platforms {
		streamer.Platforms = append(streamer.Platforms, domain.Platform(platform))
	}
	for _, tier := range record.DonationTiers {
		streamer.DonationTiers = append(streamer.DonationTiers, domain.DonationTier(tier))
	}
	return streamer, nil
}
