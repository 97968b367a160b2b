// Package localstore provides the durable per-key local storage consumed by
// the sync engine. Each key holds one independently persisted string value;
// there are no transactional guarantees across keys.
package localstore

// Known keys. There is no versioning field, so every value decoded from these
// keys must tolerate missing fields by falling back to schema defaults.
const (
	KeyTheme           = "theme"
	KeySplashGif       = "splashGif"
	KeyUserProfile     = "userProfile"
	KeySidebarSettings = "sidebarSettings"
	KeyAISettings      = "aiSettings"
	KeyUISettings      = "uiSettings"
	KeyJournal         = "aiJournal"
)

// Store is durable per-key string storage that survives process restarts.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)

	// Set stores a value under key, replacing any prior value.
	Set(key, value string)

	// Remove deletes a key. Removing an absent key is a no-op.
	Remove(key string)

	// Close releases the underlying storage.
	Close() error
}
