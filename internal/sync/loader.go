package sync

import (
	"context"
	"errors"
	"time"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/remotestore"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/metrics"
)

// LoadConversationBody fetches the message body of one conversation from the
// remote document on demand, keeping the resident working set small. Guests
// have no remote body, and a missing conversation yields an empty sequence.
// Any fetch failure returns an empty sequence plus the error so the caller
// can substitute a visible placeholder.
//
// This is a full-document fetch: cost grows with total document size, which
// is acceptable only while per-user documents stay small.
func (c *Controller) LoadConversationBody(ctx context.Context, conversationID string) ([]model.Message, error) {
	identity := c.Identity()
	if identity == "" || c.remote == nil {
		return []model.Message{}, nil
	}

	start := time.Now()
	doc, err := c.remote.Fetch(ctx, identity)
	if err != nil {
		if errors.Is(err, remotestore.ErrNotFound) {
			metrics.RecordLazyLoad("miss", time.Since(start).Seconds())
			return []model.Message{}, nil
		}
		metrics.RecordLazyLoad("error", time.Since(start).Seconds())
		return []model.Message{}, err
	}

	chat, ok := doc.FindChat(conversationID)
	if !ok || chat.Messages == nil {
		metrics.RecordLazyLoad("miss", time.Since(start).Seconds())
		return []model.Message{}, nil
	}
	metrics.RecordLazyLoad("hit", time.Since(start).Seconds())
	return chat.Messages, nil
}
