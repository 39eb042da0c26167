package repository

import (
	"database/sql"
	"time"

	"github.com/mindfulware/therabot/internal/domain"
)

// JournalRepository handles journal entry persistence
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// GetByDate retrieves a user's entry for a date
func (r *JournalRepository) GetByDate(userID int64, date string) (*domain.JournalEntry, error) {
	entry := &domain.JournalEntry{}
	var mood sql.NullString

	err := r.db.QueryRow(`
		SELECT id, user_id, entry_date, mood, content, created_at, updated_at
		FROM journal_entries WHERE user_id = ? AND entry_date = ?
	`, userID, date).Scan(&entry.ID, &entry.UserID, &entry.EntryDate,
		&mood, &entry.Content, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if mood.Valid {
		entry.Mood = mood.String
	}

	return entry, nil
}

// List retrieves summaries of a user's entries, most recent date first
func (r *JournalRepository) List(userID int64) ([]*domain.JournalEntrySummary, error) {
	rows, err := r.db.Query(`
		SELECT id, entry_date, mood, content
		FROM journal_entries WHERE user_id = ?
		ORDER BY entry_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntrySummary
	for rows.Next() {
		entry := &domain.JournalEntrySummary{}
		var mood sql.NullString
		var content string

		if err := rows.Scan(&entry.ID, &entry.Date, &mood, &content); err != nil {
			return nil, err
		}

		if mood.Valid {
			entry.Mood = mood.String
		}
		entry.Preview = previewOf(content)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Create creates a new entry
func (r *JournalRepository) Create(entry *domain.JournalEntry) error {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	res, err := r.db.Exec(`
		INSERT INTO journal_entries (user_id, entry_date, mood, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.EntryDate, entry.Mood, entry.Content,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// Update replaces the content and mood of an existing entry
func (r *JournalRepository) Update(entry *domain.JournalEntry) error {
	entry.UpdatedAt = time.Now()

	_, err := r.db.Exec(`
		UPDATE journal_entries SET content = ?, mood = ?, updated_at = ?
		WHERE id = ?
	`, entry.Content, entry.Mood, entry.UpdatedAt, entry.ID)

	return err
}

// DeleteByDate removes a user's entry for a date; reports whether a row
// was deleted.
func (r *JournalRepository) DeleteByDate(userID int64, date string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM journal_entries WHERE user_id = ? AND entry_date = ?
	`, userID, date)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// previewOf truncates content to 100 runes for list views.
func previewOf(content string) string {
	const max = 100
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
