// Package journal folds individual user/assistant events into day-bucketed
// entries used as contextual memory for completion requests.
package journal

import (
	"strings"
	"sync"
	"time"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/localstore"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/metrics"
)

// Aggregator accumulates journal entries and writes the full sequence through
// to the local store after every mutation. Entries are never pruned.
type Aggregator struct {
	mu      sync.RWMutex
	entries []model.DailyJournalEntry
	store   localstore.Store
}

// New creates an aggregator, loading any journal persisted in the store.
// A corrupt stored value falls back to an empty journal.
func New(store localstore.Store) *Aggregator {
	a := &Aggregator{store: store}
	var saved []model.DailyJournalEntry
	if localstore.GetJSON(store, localstore.KeyJournal, &saved) {
		a.entries = saved
	}
	return a
}

// Record appends an event to the entry for now's local calendar date,
// creating the entry if the date has none yet. Empty (after trimming)
// content is a no-op. New entries are appended in creation order, which is
// not necessarily date order; logs within an entry keep arrival order even
// when timestamps are not strictly increasing.
func (a *Aggregator) Record(eventType model.Role, content string, now time.Time) {
	if strings.TrimSpace(content) == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	date := now.Local().Format("2006-01-02")
	item := model.JournalLogItem{
		Timestamp: now.UnixMilli(),
		Type:      eventType,
		Content:   content,
	}

	found := false
	for i := range a.entries {
		if a.entries[i].Date == date {
			a.entries[i].Logs = append(a.entries[i].Logs, item)
			found = true
			break
		}
	}
	if !found {
		a.entries = append(a.entries, model.DailyJournalEntry{
			Date: date,
			Logs: []model.JournalLogItem{item},
		})
	}

	localstore.SetJSON(a.store, localstore.KeyJournal, a.entries)
	metrics.JournalEventsTotal.WithLabelValues(string(eventType)).Inc()
}

// Entries returns a copy of the journal sequence.
func (a *Aggregator) Entries() []model.DailyJournalEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]model.DailyJournalEntry, len(a.entries))
	for i, e := range a.entries {
		logs := make([]model.JournalLogItem, len(e.Logs))
		copy(logs, e.Logs)
		out[i] = model.DailyJournalEntry{Date: e.Date, Logs: logs}
	}
	return out
}

// Replace swaps the whole journal sequence, used when a remote document
// overlays local state, and persists it.
func (a *Aggregator) Replace(entries []model.DailyJournalEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = entries
	localstore.SetJSON(a.store, localstore.KeyJournal, a.entries)
}
