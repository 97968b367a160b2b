package remotestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

const (
	// BucketName is the KV bucket holding one document per identity.
	BucketName = "user_data"
)

// KVStore is a DocumentStore backed by a JetStream key-value bucket. The key
// is the user identity; the value is the full snapshot document as JSON.
type KVStore struct {
	client *Client
	kv     jetstream.KeyValue
	logger *logger.Logger
}

// NewKVStore binds (creating if needed) the document bucket.
func NewKVStore(ctx context.Context, client *Client, log *logger.Logger) (*KVStore, error) {
	js := client.JetStream()

	kv, err := js.KeyValue(ctx, BucketName)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      BucketName,
			Description: "Per-user synced application documents",
			History:     1,
			Storage:     jetstream.FileStorage,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bind document bucket: %w", err)
	}

	return &KVStore{client: client, kv: kv, logger: log}, nil
}

// Fetch returns the document stored for identity.
func (s *KVStore) Fetch(ctx context.Context, identity string) (*model.SyncedSnapshot, error) {
	entry, err := s.kv.Get(ctx, identity)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &NetworkError{Op: "fetch", Err: err}
	}

	// A malformed document is treated as field-absent, not fatal: whatever
	// decodes is overlaid, the rest keeps local values.
	var doc model.SyncedSnapshot
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		s.logger.Warn("malformed remote document, treating fields as absent",
			zap.String("identity", identity), zap.Error(err))
		return &model.SyncedSnapshot{}, nil
	}
	return &doc, nil
}

// Put fully replaces the document stored for identity.
func (s *KVStore) Put(ctx context.Context, identity string, doc *model.SyncedSnapshot) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if _, err := s.kv.Put(ctx, identity, data); err != nil {
		return &NetworkError{Op: "put", Err: err}
	}
	return nil
}
