package model

// JournalLogItem is one raw user/assistant text event.
type JournalLogItem struct {
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Type      Role   `json:"type"`
	Content   string `json:"content"`
}

// DailyJournalEntry buckets log items by local calendar date. There is at
// most one entry per date string; logs keep arrival order even when their
// timestamps are not strictly increasing.
type DailyJournalEntry struct {
	Date string           `json:"date"` // YYYY-MM-DD, local time
	Logs []JournalLogItem `json:"logs"`
}
