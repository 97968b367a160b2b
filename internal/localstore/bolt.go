package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

const bucketName = "app_state"

// BoltStore is a bbolt-backed Store. All values live in a single bucket, one
// value per key, so a write touches exactly one key at a time.
type BoltStore struct {
	db     *bolt.DB
	logger *logger.Logger
}

// OpenBolt opens (creating if needed) the local store database at path.
func OpenBolt(path string, log *logger.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db, logger: log}, nil
}

// Get returns the stored value and whether the key was present.
func (s *BoltStore) Get(key string) (string, bool) {
	var value string
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("local store read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, found
}

// Set stores a value under key. Failures are logged, not surfaced: callers
// treat the local store as always available and a lost mirror write is
// repaired by the next successful one.
func (s *BoltStore) Set(key, value string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		s.logger.Warn("local store write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes a key.
func (s *BoltStore) Remove(key string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		s.logger.Warn("local store delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
