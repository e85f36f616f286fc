package history

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/scicalc-demo/domain/history"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errSessionDeleted aborts the create transaction for a deleted session.
var errSessionDeleted = errors.New("session deleted")

// Repository provides access to history storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new entry unless its session has been deleted.
// It reports whether the entry was stored.
func (r *Repository) Create(entry *domain.Entry) (bool, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var deleted int64
		if err := tx.Model(&domain.DeletedSession{}).
			Where("session_id = ?", entry.SessionID).
			Count(&deleted).Error; err != nil {
			return err
		}
		if deleted > 0 {
			return errSessionDeleted
		}
		return tx.Create(entry).Error
	})
	if errors.Is(err, errSessionDeleted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create history entry: %w", err)
	}
	return true, nil
}

// ListBySession returns up to limit entries of a session, newest first.
// Entries sharing a timestamp are ordered by insertion.
func (r *Repository) ListBySession(sessionID string, limit int) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Order("rowid DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	return entries, nil
}

// CountBySession returns the total number of entries of a session.
func (r *Repository) CountBySession(sessionID string) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Entry{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}

// DeleteBySession removes every entry of a session and returns how many were removed.
// With sessionDeleted set, the session is also marked deleted in the same
// transaction so that later Create calls for it are dropped.
func (r *Repository) DeleteBySession(sessionID string, sessionDeleted bool) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if sessionDeleted {
			marker := &domain.DeletedSession{SessionID: sessionID, DeletedAt: time.Now()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(marker).Error; err != nil {
				return err
			}
		}
		result := tx.Where("session_id = ?", sessionID).Delete(&domain.Entry{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete history entries: %w", err)
	}
	return removed, nil
}

