package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names for the record families kept in the store.
var (
	BucketStreamers   = []byte("streamers")
	BucketDonations   = []byte("donations")
	BucketWalletIndex = []byte("wallet_index")
)

// OpenStore opens the embedded bbolt store at cfg.DBPath and ensures all
// buckets exist. The returned handle is shared by every repository; bbolt
// serializes writers internally, so no additional locking happens above it.
func OpenStore(cfg *Config) (*bolt.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := bolt.Open(cfg.DBPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{BucketStreamers, BucketDonations, BucketWalletIndex} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
