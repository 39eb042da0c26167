package domain

import "time"

// JournalEntry is a per-user, date-keyed journal record
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	EntryDate string    `json:"date"` // YYYY-MM-DD
	Mood      string    `json:"mood,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalEntrySummary is the list view of an entry: the content is
// replaced by a short preview.
type JournalEntrySummary struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Mood    string `json:"mood,omitempty"`
	Preview string `json:"preview"`
}

// SaveJournalRequest creates or updates the entry for a date
type SaveJournalRequest struct {
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood,omitempty"`
}
