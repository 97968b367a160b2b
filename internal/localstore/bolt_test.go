package localstore

import (
	"path/filepath"
	"testing"

	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := OpenBolt(path, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get(KeyTheme); ok {
		t.Error("fresh store should have no theme")
	}

	store.Set(KeyTheme, "dark")
	if v, ok := store.Get(KeyTheme); !ok || v != "dark" {
		t.Errorf("Get(theme) = %q, %v", v, ok)
	}

	store.Remove(KeyTheme)
	if _, ok := store.Get(KeyTheme); ok {
		t.Error("removed key still present")
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := OpenBolt(path, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.Set(KeySplashGif, "https://example.com/splash.gif")
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenBolt(path, logger.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok := reopened.Get(KeySplashGif); !ok || v != "https://example.com/splash.gif" {
		t.Errorf("Get after reopen = %q, %v", v, ok)
	}
}

func TestBoltStoreCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")
	store, err := OpenBolt(path, logger.NewNop())
	if err != nil {
		t.Fatalf("open with missing parents: %v", err)
	}
	store.Close()
}

func TestGetJSONCorruptValueReturnsFalse(t *testing.T) {
	store := NewMemStore()
	store.Set(KeyAISettings, "{broken")

	var out map[string]any
	if GetJSON(store, KeyAISettings, &out) {
		t.Error("GetJSON should report false for corrupt JSON")
	}
	if GetJSON(store, "absent", &out) {
		t.Error("GetJSON should report false for absent key")
	}
}

func TestSetJSONGetJSONRoundTrip(t *testing.T) {
	store := NewMemStore()
	SetJSON(store, KeyUserProfile, map[string]string{"nickname": "ada"})

	var out map[string]string
	if !GetJSON(store, KeyUserProfile, &out) {
		t.Fatal("GetJSON should succeed")
	}
	if out["nickname"] != "ada" {
		t.Errorf("nickname = %q", out["nickname"])
	}
}
