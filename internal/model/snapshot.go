package model

// SyncedSnapshot is the single document exchanged with the remote store, one
// per identity. Optional fields are pointers or nil-able slices so a partial
// document can be overlaid field-by-field: absent fields keep the local value
// instead of clobbering it. Wire keys match the historical document shape, so
// older documents remain readable.
type SyncedSnapshot struct {
	Chats           []Chat              `json:"chats"`
	UserProfile     *UserProfile        `json:"userProfile,omitempty"`
	Theme           string              `json:"theme,omitempty"`
	SplashGif       string              `json:"splashGif,omitempty"`
	SidebarSettings *SidebarSettings    `json:"sidebarSettings,omitempty"`
	UISettings      *UISettings         `json:"uiSettings,omitempty"`
	AISettings      *AISettings         `json:"aiSettings,omitempty"`
	Journal         []DailyJournalEntry `json:"aiJournal,omitempty"`
}

// FindChat locates a conversation body by id within the document.
func (s *SyncedSnapshot) FindChat(id string) (Chat, bool) {
	if s == nil {
		return Chat{}, false
	}
	for _, c := range s.Chats {
		if c.ID == id {
			return c, true
		}
	}
	return Chat{}, false
}
