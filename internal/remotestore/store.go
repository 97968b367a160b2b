// Package remotestore provides the remote keyed document store: one JSON
// document per user identity, readable and writable only while online.
package remotestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
)

// ErrNotFound indicates no document exists yet for the identity. Distinct
// from a NetworkError: the store was reachable and answered.
var ErrNotFound = errors.New("remote document not found")

// NetworkError wraps any transport-level failure (offline, timeout, broker
// unreachable). Callers degrade to local state when they see one.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("remote store %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// DocumentStore is the contract the sync engine consumes. Writes fully
// replace the prior document; field-level preservation is done client-side
// before calling Put.
type DocumentStore interface {
	// Fetch returns the document for identity, ErrNotFound when none exists,
	// or a *NetworkError when the store is unreachable.
	Fetch(ctx context.Context, identity string) (*model.SyncedSnapshot, error)

	// Put replaces the document for identity.
	Put(ctx context.Context, identity string, doc *model.SyncedSnapshot) error
}
