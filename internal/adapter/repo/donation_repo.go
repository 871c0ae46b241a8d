package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"server/internal/domain"
	"server/internal/infra"
)

// donationRecord is the stored JSON form of a domain.Donation.
type donationRecord struct {
	DonationID   string  `json:"donation_id"`
	StreamerID   string  `json:"streamer_id"`
	AmountUSD    float64 `json:"amount_usd"`
	DonorAddress string  `json:"donor_address"`
	Message      string  `json:"message,omitempty"`
	ClipURL      string  `json:"clip_url,omitempty"`
	TxHash       string  `json:"tx_hash"`
	Timestamp    int64   `json:"timestamp"`
}

// DonationRepositoryBolt implements domain.DonationRepository backed by bbolt.
type DonationRepositoryBolt struct {
	db *bolt.DB
}

// NewDonationRepository creates a new DonationRepositoryBolt.
func NewDonationRepository(db *bolt.DB) *DonationRepositoryBolt {
	return &DonationRepositoryBolt{db: db}
}

// Save writes a donation record. Donations are written once and never updated.
func (r *DonationRepositoryBolt) Save(ctx context.Context, donation *domain.Donation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(encodeDonation(donation))
	if err != nil {
		return fmt.Errorf("encode donation %s: %w", donation.ID, err)
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(infra.BucketDonations).Put([]byte(donation.ID), value); err != nil {
			return fmt.Errorf("put donation %s: %w", donation.ID, err)
		}
		return nil
	})
}

// GetByID fetches a donation by its opaque identifier.
func (r *DonationRepositoryBolt) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var donation *domain.Donation
	err := r.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(infra.BucketDonations).Get([]byte(id))
		if value == nil {
			return domain.ErrNotFound
		}
		var record donationRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return fmt.Errorf("decode donation record: %w", err)
		}
		donation = decodeDonation(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

// ListByStreamer scans the donations bucket for records referencing the given
// streamer, most recent first. The scan is linear; donations are keyed by id,
// not by streamer.
func (r *DonationRepositoryBolt) ListByStreamer(ctx context.Context, streamerID string, limit int) ([]domain.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var donations []domain.Donation
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(infra.BucketDonations).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var record donationRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("decode donation record: %w", err)
			}
			if record.StreamerID != streamerID {
				continue
			}
			donations = append(donations, *decodeDonation(record))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(donations, func(i, j int) bool {
		return donations[i].Timestamp > donations[j].Timestamp
	})
	if limit > 0 && len(donations) > limit {
		donations = donations[:limit]
	}
	return donations, nil
}

func encodeDonation(donation *domain.Donation) donationRecord {
	return donationRecord{
		DonationID:   donation.ID,
		StreamerID:   donation.StreamerID,
		AmountUSD:    donation.AmountUSD,
		DonorAddress: donation.DonorAddress,
		Message:      donation.Message,
		ClipURL:      donation.ClipURL,
		TxHash:       donation.TxHash,
		Timestamp:    donation.Timestamp,
	}
}

func decodeDonation(record donationRecord) *domain.Donation {
	return &domain.Donation{
		ID:           record.DonationID,
		StreamerID:   record.StreamerID,
		AmountUSD:    record.AmountUSD,
		DonorAddress: record.DonorAddress,
		Message:      record.Message,
		ClipURL:      record.ClipURL,
		TxHash:       record.TxHash,
		Timestamp:    record.Timestamp,
	}
}
