package sync

import (
	"testing"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
)

func TestBuildSnapshotOnlyActiveCarriesBody(t *testing.T) {
	roster := []model.ChatMetadata{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
		{ID: "c", Title: "Third"},
	}
	active := &model.Chat{
		ID:    "b",
		Title: "Second",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "hi", Timestamp: 1},
		},
	}

	snap := BuildSnapshot(roster, active, Fields{Theme: "dark"})

	if len(snap.Chats) != 3 {
		t.Fatalf("got %d chats, want 3", len(snap.Chats))
	}
	for _, chat := range snap.Chats {
		if chat.ID == "b" {
			if len(chat.Messages) != 1 {
				t.Errorf("active chat body lost: %+v", chat.Messages)
			}
			continue
		}
		if chat.Messages == nil || len(chat.Messages) != 0 {
			t.Errorf("chat %s should have an empty body, got %v", chat.ID, chat.Messages)
		}
	}
	if snap.Theme != "dark" {
		t.Errorf("Theme = %q", snap.Theme)
	}
}

func TestBuildSnapshotNoActiveChat(t *testing.T) {
	roster := []model.ChatMetadata{{ID: "a", Title: "First"}}
	snap := BuildSnapshot(roster, nil, Fields{})
	if len(snap.Chats) != 1 || len(snap.Chats[0].Messages) != 0 {
		t.Errorf("snapshot = %+v", snap.Chats)
	}
}

func TestMergeInactiveBodiesRestoresRemoteHistory(t *testing.T) {
	snap := BuildSnapshot(
		[]model.ChatMetadata{{ID: "a", Title: "First"}, {ID: "b", Title: "Second"}},
		&model.Chat{ID: "a", Title: "First", Messages: []model.Message{
			{Role: model.RoleUser, Content: "new", Timestamp: 2},
		}},
		Fields{},
	)
	remote := &model.SyncedSnapshot{
		Chats: []model.Chat{
			{ID: "a", Messages: []model.Message{{Role: model.RoleUser, Content: "stale", Timestamp: 1}}},
			{ID: "b", Messages: []model.Message{{Role: model.RoleAssistant, Content: "history", Timestamp: 1}}},
		},
	}

	mergeInactiveBodies(snap, remote, "a")

	a, _ := snap.FindChat("a")
	if len(a.Messages) != 1 || a.Messages[0].Content != "new" {
		t.Errorf("active body must win over remote: %+v", a.Messages)
	}
	b, _ := snap.FindChat("b")
	if len(b.Messages) != 1 || b.Messages[0].Content != "history" {
		t.Errorf("inactive body must be restored from remote: %+v", b.Messages)
	}
}

func TestMergeInactiveBodiesDeletedChatStaysDeleted(t *testing.T) {
	snap := BuildSnapshot([]model.ChatMetadata{{ID: "a", Title: "First"}}, nil, Fields{})
	remote := &model.SyncedSnapshot{
		Chats: []model.Chat{
			{ID: "a", Messages: []model.Message{{Content: "kept"}}},
			{ID: "deleted", Messages: []model.Message{{Content: "gone"}}},
		},
	}

	mergeInactiveBodies(snap, remote, "")

	if len(snap.Chats) != 1 {
		t.Fatalf("deleted chat resurrected: %+v", snap.Chats)
	}
	if _, ok := snap.FindChat("deleted"); ok {
		t.Error("deleted chat present after merge")
	}
}

func TestMergeInactiveBodiesActiveChatWithEmptyBodyStaysEmpty(t *testing.T) {
	snap := BuildSnapshot(
		[]model.ChatMetadata{{ID: "a", Title: "First"}, {ID: "b", Title: "Second"}},
		&model.Chat{ID: "a", Title: "First", Messages: []model.Message{}},
		Fields{},
	)
	remote := &model.SyncedSnapshot{
		Chats: []model.Chat{
			{ID: "a", Messages: []model.Message{{Role: model.RoleUser, Content: "cleared", Timestamp: 1}}},
			{ID: "b", Messages: []model.Message{{Role: model.RoleAssistant, Content: "history", Timestamp: 1}}},
		},
	}

	mergeInactiveBodies(snap, remote, "a")

	a, _ := snap.FindChat("a")
	if len(a.Messages) != 0 {
		t.Errorf("active chat cleared locally must stay empty: %+v", a.Messages)
	}
	b, _ := snap.FindChat("b")
	if len(b.Messages) != 1 {
		t.Errorf("inactive body must still be restored: %+v", b.Messages)
	}
}

func TestMergeInactiveBodiesNilRemote(t *testing.T) {
	snap := BuildSnapshot([]model.ChatMetadata{{ID: "a"}}, nil, Fields{})
	mergeInactiveBodies(snap, nil, "")
	if len(snap.Chats) != 1 {
		t.Errorf("snapshot mutated by nil remote: %+v", snap.Chats)
	}
}
