package sync

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/localstore"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/remotestore"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/metrics"
)

// Phase is the controller lifecycle state. Loading is reachable only at
// startup and on identity change.
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

// DefaultChatTitle is the title given to conversations created without one.
const DefaultChatTitle = "New Chat"

// ErrGuestMode is returned when an operation requires an identified user.
var ErrGuestMode = errors.New("no user identity: remote sync disabled")

// ErrNoRemote is returned when no remote store is configured at all, as
// opposed to a configured one being temporarily unreachable.
var ErrNoRemote = errors.New("remote store not configured")

// Controller owns the in-memory application state and is the exclusive
// writer to the remote document store. UI-facing handlers mutate state only
// through its operations; each mutation updates memory, mirrors the changed
// fields into the local store, and schedules a push when identified.
type Controller struct {
	local   localstore.Store
	remote  remotestore.DocumentStore
	journal *journal.Aggregator
	logger  *logger.Logger

	mu      sync.Mutex
	phase   Phase
	roster  []model.ChatMetadata
	active  *model.Chat
	profile *model.UserProfile
	theme   string
	splash  string
	sidebar model.SidebarSettings
	ui      model.UISettings
	ai      model.AISettings

	online atomic.Bool

	pushCh      chan struct{} // capacity 1: pending pushes coalesce
	stopCh      chan struct{}
	wg          sync.WaitGroup
	pushMu      sync.Mutex // at most one in-flight push per identity
	pushTimeout time.Duration

	errMu       sync.Mutex
	lastPushErr error
	lastPushAt  time.Time
}

// NewController creates a controller in the Uninitialized phase with all
// settings at their schema defaults. A non-positive pushTimeout falls back
// to 30s.
func NewController(local localstore.Store, remote remotestore.DocumentStore, agg *journal.Aggregator, pushTimeout time.Duration, log *logger.Logger) *Controller {
	if pushTimeout <= 0 {
		pushTimeout = 30 * time.Second
	}
	c := &Controller{
		local:       local,
		remote:      remote,
		journal:     agg,
		logger:      log,
		ui:          model.DefaultUISettings(),
		ai:          model.DefaultAISettings(),
		theme:       "light",
		pushCh:      make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		pushTimeout: pushTimeout,
	}
	c.online.Store(true)
	return c
}

// Start launches the push worker. Stop must be called to drain it.
func (c *Controller) Start() {
	c.wg.Add(1)
	go c.pushWorker()
}

// Stop shuts down the push worker, letting an in-flight push finish.
func (c *Controller) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

// Phase returns the controller lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// SetOnline records the binary connectivity signal. It gates only the manual
// sync operation; scheduled pushes are still attempted and fail on their own.
func (c *Controller) SetOnline(online bool) {
	c.online.Store(online)
}

// Online reports the last recorded connectivity signal.
func (c *Controller) Online() bool {
	return c.online.Load()
}

// Identity returns the current user identity, or "" in guest mode.
func (c *Controller) Identity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identityLocked()
}

func (c *Controller) identityLocked() string {
	if c.profile == nil {
		return ""
	}
	return c.profile.Buid
}

// InitialLoad populates state from the local store and, for an identified
// user, overlays the remote document field-by-field on top. Any remote
// failure degrades to an empty-but-usable state; it never returns an error
// that would block the UI.
func (c *Controller) InitialLoad(ctx context.Context) {
	c.mu.Lock()
	c.phase = PhaseLoading
	c.loadLocalLocked()
	identity := c.identityLocked()
	c.mu.Unlock()

	if identity == "" || c.remote == nil {
		// Guest mode never shows a remote roster, even if a prior identified
		// session left conversation data behind.
		c.mu.Lock()
		c.roster = nil
		c.active = nil
		c.phase = PhaseReady
		c.mu.Unlock()
		return
	}

	doc, err := c.remote.Fetch(ctx, identity)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, remotestore.ErrNotFound) {
			c.logger.Warn("initial load: remote fetch failed, using local state",
				zap.String("buid", identity), zap.Error(err))
		}
		c.roster = nil
		c.active = nil
	} else {
		c.applyRemoteLocked(doc)
	}
	c.phase = PhaseReady
}

// loadLocalLocked reads every persisted key, falling back to schema defaults
// for absent or corrupt values.
func (c *Controller) loadLocalLocked() {
	if theme, ok := c.local.Get(localstore.KeyTheme); ok && theme != "" {
		c.theme = theme
	}
	if splash, ok := c.local.Get(localstore.KeySplashGif); ok {
		c.splash = splash
	}
	var profile model.UserProfile
	if localstore.GetJSON(c.local, localstore.KeyUserProfile, &profile) && profile.Buid != "" {
		c.profile = &profile
	}
	var sidebar model.SidebarSettings
	if localstore.GetJSON(c.local, localstore.KeySidebarSettings, &sidebar) {
		c.sidebar = sidebar
	}
	ai := model.DefaultAISettings()
	if localstore.GetJSON(c.local, localstore.KeyAISettings, &ai) {
		c.ai = ai
	}
	ui := model.DefaultUISettings()
	if localstore.GetJSON(c.local, localstore.KeyUISettings, &ui) {
		c.ui = ui
	}
}

// applyRemoteLocked overlays a remote document onto current state. Only
// fields present in the document overwrite; absent fields keep whatever the
// local load produced. The roster always reflects the document's chat list.
func (c *Controller) applyRemoteLocked(doc *model.SyncedSnapshot) {
	roster := make([]model.ChatMetadata, len(doc.Chats))
	for i, chat := range doc.Chats {
		roster[i] = chat.Metadata()
	}
	c.roster = roster
	c.active = nil

	if doc.UserProfile != nil {
		p := *doc.UserProfile
		c.profile = &p
		localstore.SetJSON(c.local, localstore.KeyUserProfile, p)
	}
	if doc.Theme != "" {
		c.theme = doc.Theme
		c.local.Set(localstore.KeyTheme, doc.Theme)
	}
	if doc.SplashGif != "" {
		c.splash = doc.SplashGif
		c.local.Set(localstore.KeySplashGif, doc.SplashGif)
	}
	if doc.SidebarSettings != nil {
		c.sidebar = *doc.SidebarSettings
		localstore.SetJSON(c.local, localstore.KeySidebarSettings, c.sidebar)
	}
	if doc.UISettings != nil {
		c.ui = *doc.UISettings
		localstore.SetJSON(c.local, localstore.KeyUISettings, c.ui)
	}
	if doc.AISettings != nil {
		ai := *doc.AISettings
		if ai.DiscussedTopics == nil {
			ai.DiscussedTopics = c.ai.DiscussedTopics
		}
		c.ai = ai
		localstore.SetJSON(c.local, localstore.KeyAISettings, c.ai)
	}
	if doc.Journal != nil {
		c.journal.Replace(doc.Journal)
	}
}

// Roster returns the conversation metadata list and the active chat id.
func (c *Controller) Roster() ([]model.ChatMetadata, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ChatMetadata, len(c.roster))
	copy(out, c.roster)
	activeID := ""
	if c.active != nil {
		activeID = c.active.ID
	}
	return out, activeID
}

// ActiveChat returns a copy of the active conversation, if any.
func (c *Controller) ActiveChat() (model.Chat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return model.Chat{}, false
	}
	chat := *c.active
	chat.Messages = append([]model.Message(nil), c.active.Messages...)
	return chat, true
}

// CreateChat adds a new conversation at the head of the roster and makes it
// active with an empty body. Ids are generated locally and never reused.
func (c *Controller) CreateChat(title string) model.Chat {
	if title == "" {
		title = DefaultChatTitle
	}
	chat := model.Chat{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Title:    title,
		Messages: []model.Message{},
	}

	c.mu.Lock()
	c.roster = append([]model.ChatMetadata{chat.Metadata()}, c.roster...)
	c.active = &chat
	c.mu.Unlock()

	c.schedulePush()
	return chat
}

// SaveFeatureChat stores a feature-generated conversation (question or image
// chat result) as a new roster entry with its messages as the active body.
func (c *Controller) SaveFeatureChat(title string, messages []model.Message) model.Chat {
	chat := model.Chat{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Title:    title,
		Messages: messages,
	}

	c.mu.Lock()
	c.roster = append([]model.ChatMetadata{chat.Metadata()}, c.roster...)
	c.active = &chat
	c.mu.Unlock()

	c.schedulePush()
	return chat
}

// DeleteChat removes a conversation. If it was active, the first remaining
// roster entry is selected and its body lazily loaded as the new active chat.
func (c *Controller) DeleteChat(ctx context.Context, id string) {
	c.mu.Lock()
	filtered := c.roster[:0:0]
	for _, meta := range c.roster {
		if meta.ID != id {
			filtered = append(filtered, meta)
		}
	}
	c.roster = filtered

	var fallback *model.ChatMetadata
	if c.active != nil && c.active.ID == id {
		c.active = nil
		if len(filtered) > 0 {
			meta := filtered[0]
			fallback = &meta
		}
	}
	c.mu.Unlock()

	if fallback != nil {
		messages, err := c.LoadConversationBody(ctx, fallback.ID)
		if err != nil {
			c.logger.WithSync(c.Identity(), fallback.ID).Warn("fallback chat body load failed", zap.Error(err))
		}
		c.mu.Lock()
		c.active = &model.Chat{ID: fallback.ID, Title: fallback.Title, Messages: messages}
		c.mu.Unlock()
	}

	c.schedulePush()
}

// RenameChat changes a conversation title. Rename does not reorder the roster.
func (c *Controller) RenameChat(id, title string) bool {
	c.mu.Lock()
	found := false
	for i := range c.roster {
		if c.roster[i].ID == id {
			c.roster[i].Title = title
			found = true
			break
		}
	}
	if found && c.active != nil && c.active.ID == id {
		c.active.Title = title
	}
	c.mu.Unlock()

	if found {
		c.schedulePush()
	}
	return found
}

// OpenChat makes the conversation with id the active one, lazily fetching its
// body from the remote document. On a load failure the chat opens with a
// single synthetic assistant message so the user sees something rather than a
// silently empty conversation. Navigation does not schedule a push.
func (c *Controller) OpenChat(ctx context.Context, id string) (model.Chat, bool) {
	c.mu.Lock()
	if c.active != nil && c.active.ID == id {
		chat := *c.active
		c.mu.Unlock()
		return chat, true
	}
	var meta *model.ChatMetadata
	for i := range c.roster {
		if c.roster[i].ID == id {
			m := c.roster[i]
			meta = &m
			break
		}
	}
	c.active = nil
	c.mu.Unlock()

	if meta == nil {
		return model.Chat{}, false
	}

	messages, err := c.LoadConversationBody(ctx, id)
	if err != nil {
		c.logger.WithSync(c.Identity(), id).Warn("conversation body load failed", zap.Error(err))
		messages = []model.Message{{
			Role:      model.RoleAssistant,
			Content:   "The conversation could not be loaded.",
			Timestamp: time.Now().UnixMilli(),
		}}
	}

	chat := model.Chat{ID: meta.ID, Title: meta.Title, Messages: messages}
	c.mu.Lock()
	c.active = &chat
	c.mu.Unlock()
	return chat, true
}

// CloseActiveChat discards the active body from memory (not from the remote
// document).
func (c *Controller) CloseActiveChat() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}

// ReplaceActiveMessages swaps the active conversation's message sequence,
// used by the send/regenerate/explain flows.
func (c *Controller) ReplaceActiveMessages(messages []model.Message) bool {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return false
	}
	c.active.Messages = messages
	c.mu.Unlock()

	c.schedulePush()
	return true
}

// Profile returns a copy of the current profile, if one exists.
func (c *Controller) Profile() (model.UserProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return model.UserProfile{}, false
	}
	return *c.profile, true
}

// UpdateProfile applies a partial profile update, creating a fresh guest
// profile (with a new identity) when none exists. Newly added interests are
// propagated into the AI settings' discussed topics. An identity change
// re-runs the initial load.
func (c *Controller) UpdateProfile(ctx context.Context, update model.ProfileUpdate) model.UserProfile {
	now := time.Now().UnixMilli()

	c.mu.Lock()
	prevIdentity := c.identityLocked()
	if c.profile == nil {
		p := model.NewGuestProfile(now)
		c.profile = &p
	}
	added := c.profile.Apply(update, now)
	profile := *c.profile
	localstore.SetJSON(c.local, localstore.KeyUserProfile, profile)

	if len(added) > 0 {
		for _, topic := range added {
			if !hasTopic(c.ai.DiscussedTopics, topic) {
				c.ai.DiscussedTopics = append(c.ai.DiscussedTopics, model.DiscussedTopic{
					Topic:                  topic,
					Discussed:              false,
					LastDiscussedTimestamp: now,
				})
			}
		}
		localstore.SetJSON(c.local, localstore.KeyAISettings, c.ai)
	}
	identityChanged := c.identityLocked() != prevIdentity
	c.mu.Unlock()

	if identityChanged {
		c.InitialLoad(ctx)
	}
	c.schedulePush()
	return profile
}

func hasTopic(topics []model.DiscussedTopic, topic string) bool {
	for _, t := range topics {
		if strings.EqualFold(t.Topic, topic) {
			return true
		}
	}
	return false
}

// AISettings returns the current AI settings.
func (c *Controller) AISettings() model.AISettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ai
}

// UpdateAISettings replaces the AI settings.
func (c *Controller) UpdateAISettings(s model.AISettings) {
	if s.DiscussedTopics == nil {
		s.DiscussedTopics = []model.DiscussedTopic{}
	}
	c.mu.Lock()
	c.ai = s
	localstore.SetJSON(c.local, localstore.KeyAISettings, s)
	c.mu.Unlock()
	c.schedulePush()
}

// UISettings returns the current UI settings.
func (c *Controller) UISettings() model.UISettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ui
}

// UpdateUISettings replaces the UI settings.
func (c *Controller) UpdateUISettings(s model.UISettings) {
	c.mu.Lock()
	c.ui = s
	localstore.SetJSON(c.local, localstore.KeyUISettings, s)
	c.mu.Unlock()
	c.schedulePush()
}

// SidebarSettings returns the current sidebar settings.
func (c *Controller) SidebarSettings() model.SidebarSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sidebar
}

// UpdateSidebarSettings replaces the sidebar settings.
func (c *Controller) UpdateSidebarSettings(s model.SidebarSettings) {
	c.mu.Lock()
	c.sidebar = s
	localstore.SetJSON(c.local, localstore.KeySidebarSettings, s)
	c.mu.Unlock()
	c.schedulePush()
}

// Theme returns the current theme.
func (c *Controller) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme changes the theme.
func (c *Controller) SetTheme(theme string) {
	c.mu.Lock()
	c.theme = theme
	c.local.Set(localstore.KeyTheme, theme)
	c.mu.Unlock()
	c.schedulePush()
}

// SplashGif returns the splash image reference.
func (c *Controller) SplashGif() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.splash
}

// SetSplashGif changes the splash image reference.
func (c *Controller) SetSplashGif(url string) {
	c.mu.Lock()
	c.splash = url
	c.local.Set(localstore.KeySplashGif, url)
	c.mu.Unlock()
	c.schedulePush()
}

// ManualSync pushes the current state synchronously and reports the result
// to the caller, for the explicit user-triggered sync action.
func (c *Controller) ManualSync(ctx context.Context) error {
	identity := c.Identity()
	if identity == "" {
		return ErrGuestMode
	}
	return c.push(ctx, identity)
}

// SyncStatus describes the outcome of the most recent push for the UI.
type SyncStatus struct {
	Online      bool      `json:"online"`
	Identified  bool      `json:"identified"`
	LastPushAt  time.Time `json:"last_push_at,omitempty"`
	LastPushErr string    `json:"last_push_error,omitempty"`
}

// Status returns the current sync status.
func (c *Controller) Status() SyncStatus {
	c.errMu.Lock()
	lastErr := ""
	if c.lastPushErr != nil {
		lastErr = c.lastPushErr.Error()
	}
	at := c.lastPushAt
	c.errMu.Unlock()
	return SyncStatus{
		Online:      c.Online(),
		Identified:  c.Identity() != "",
		LastPushAt:  at,
		LastPushErr: lastErr,
	}
}

// schedulePush signals the worker. The channel holds at most one pending
// signal: pushes requested while one is in flight coalesce into a single
// push of the latest known state. Guest mode never schedules a push.
func (c *Controller) schedulePush() {
	if c.Identity() == "" {
		return
	}
	select {
	case c.pushCh <- struct{}{}:
	default:
	}
}

func (c *Controller) pushWorker() {
	defer c.wg.Done()
	for {
		select {
		case <-c.stopCh:
			return
		case <-c.pushCh:
			identity := c.Identity()
			if identity == "" {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), c.pushTimeout)
			if err := c.push(ctx, identity); err != nil {
				c.logger.Warn("snapshot push failed", zap.String("buid", identity), zap.Error(err))
			}
			cancel()
		}
	}
}

// push builds a snapshot from the latest state, merges inactive bodies from
// the stored remote document, and writes the result. pushMu serializes the
// worker with the manual-sync path; the snapshot is built only after the
// lock is held, so a push that waited carries the state as of when it runs,
// never an earlier stale build. There is no retry and no queue: a failed
// push stays unsynchronized until the next mutation or a manual sync.
func (c *Controller) push(ctx context.Context, identity string) error {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	c.mu.Lock()
	activeID := ""
	if c.active != nil {
		activeID = c.active.ID
	}
	snap := BuildSnapshot(c.roster, c.active, Fields{
		Profile:   c.profile,
		Theme:     c.theme,
		SplashGif: c.splash,
		Sidebar:   c.sidebar,
		UI:        c.ui,
		AI:        c.ai,
		Journal:   c.journal.Entries(),
	})
	c.mu.Unlock()

	start := time.Now()
	err := c.pushSnapshot(ctx, identity, snap, activeID)

	c.errMu.Lock()
	c.lastPushErr = err
	c.lastPushAt = time.Now()
	c.errMu.Unlock()

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordPush(status, time.Since(start).Seconds())
	return err
}

func (c *Controller) pushSnapshot(ctx context.Context, identity string, snap *model.SyncedSnapshot, activeID string) error {
	if c.remote == nil {
		return ErrNoRemote
	}
	remoteDoc, err := c.remote.Fetch(ctx, identity)
	if err != nil && !errors.Is(err, remotestore.ErrNotFound) {
		return err
	}
	mergeInactiveBodies(snap, remoteDoc, activeID)
	return c.remote.Put(ctx, identity, snap)
}
