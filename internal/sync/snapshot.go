// Package sync implements the state synchronization engine: snapshot
// assembly, initial load with partial overlay, serialized pushes to the
// remote document store, and lazy loading of conversation bodies.
package sync

import (
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
)

// Fields carries the non-conversation state that goes into a snapshot.
type Fields struct {
	Profile   *model.UserProfile
	Theme     string
	SplashGif string
	Sidebar   model.SidebarSettings
	UI        model.UISettings
	AI        model.AISettings
	Journal   []model.DailyJournalEntry
}

// BuildSnapshot assembles the document pushed to the remote store. It is
// deterministic given its inputs and performs no I/O. Every roster entry is
// emitted; only the active conversation carries its message body, all others
// are emitted with an empty sequence. The snapshot is authoritative for
// metadata and the active body only — the push path merges inactive bodies
// back in from the remote document before writing.
func BuildSnapshot(roster []model.ChatMetadata, active *model.Chat, fields Fields) *model.SyncedSnapshot {
	chats := make([]model.Chat, len(roster))
	for i, meta := range roster {
		messages := []model.Message{}
		if active != nil && active.ID == meta.ID {
			messages = active.Messages
		}
		chats[i] = model.Chat{ID: meta.ID, Title: meta.Title, Messages: messages}
	}

	return &model.SyncedSnapshot{
		Chats:           chats,
		UserProfile:     fields.Profile,
		Theme:           fields.Theme,
		SplashGif:       fields.SplashGif,
		SidebarSettings: &fields.Sidebar,
		UISettings:      &fields.UI,
		AISettings:      &fields.AI,
		Journal:         fields.Journal,
	}
}

// mergeInactiveBodies copies message bodies from the previously stored remote
// document into every non-active snapshot chat. Without this, every push
// would erase the remote history of all inactive conversations. The active
// chat is authoritative even when its body is empty, so it is never merged
// over. Chats absent from the snapshot stay deleted.
func mergeInactiveBodies(snap, remote *model.SyncedSnapshot, activeID string) {
	if remote == nil {
		return
	}
	for i := range snap.Chats {
		if snap.Chats[i].ID == activeID {
			continue
		}
		if prior, ok := remote.FindChat(snap.Chats[i].ID); ok && len(prior.Messages) > 0 {
			snap.Chats[i].Messages = prior.Messages
		}
	}
}
