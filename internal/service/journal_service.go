package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/repository"
)

// JournalService handles per-user, date-keyed journal entries
type JournalService struct {
	journalRepo *repository.JournalRepository
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo *repository.JournalRepository) *JournalService {
	return &JournalService{journalRepo: journalRepo}
}

// ValidateDate checks that date is a YYYY-MM-DD string.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", domain.ErrInvalidRequest)
	}
	return nil
}

// List returns summaries of all entries for a user, newest date first
func (s *JournalService) List(ctx context.Context, userID int64) ([]*domain.JournalEntrySummary, error) {
	entries, err := s.journalRepo.List(userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.JournalEntrySummary{}
	}
	return entries, nil
}

// Get returns the entry for a date; isNew reports that no entry exists
// yet and the returned value is an empty template for that date.
func (s *JournalService) Get(ctx context.Context, userID int64, date string) (*domain.JournalEntry, bool, error) {
	if err := ValidateDate(date); err != nil {
		return nil, false, err
	}

	entry, err := s.journalRepo.GetByDate(userID, date)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return &domain.JournalEntry{UserID: userID, EntryDate: date}, true, nil
	}
	return entry, false, nil
}

// Save creates or updates the entry for a date; created reports which
// of the two happened.
func (s *JournalService) Save(ctx context.Context, userID int64, date string, req *domain.SaveJournalRequest) (created bool, err error) {
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	if req.Content == "" {
		return false, fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}

	existing, err := s.journalRepo.GetByDate(userID, date)
	if err != nil {
		return false, err
	}

	if existing != nil {
		existing.Content = req.Content
		existing.Mood = req.Mood
		return false, s.journalRepo.Update(existing)
	}

	entry := &domain.JournalEntry{
		UserID:    userID,
		EntryDate: date,
		Mood:      req.Mood,
		Content:   req.Content,
	}
	return true, s.journalRepo.Create(entry)
}

// Delete removes the entry for a date
func (s *JournalService) Delete(ctx context.Context, userID int64, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	deleted, err := s.journalRepo.DeleteByDate(userID, date)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
