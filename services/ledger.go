package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"question-bank-api/models"

	"gorm.io/gorm"
)

// appendLedger records one review outcome on a user's performance ledger. If a
// row for (owner, role, category, question) already exists, its count is
// incremented and the timestamp appended; otherwise a new row is inserted with
// count 1. Must run inside the caller's transaction: a ledger write is only
// meaningful as part of a committed review decision.
func appendLedger(tx *gorm.DB, ownerID uint, ownerRole models.Role, category models.LedgerCategory, questionID uint, at time.Time) error {
	var entry models.LedgerEntry
	err := tx.Where(
		"owner_id = ? AND owner_role = ? AND category = ? AND question_id = ?",
		ownerID, ownerRole, category, questionID,
	).First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		timestamps, err := json.Marshal([]time.Time{at})
		if err != nil {
			return fmt.Errorf("failed to encode ledger timestamps: %w", err)
		}
		entry = models.LedgerEntry{
			OwnerID:    ownerID,
			OwnerRole:  ownerRole,
			Category:   category,
			QuestionID: questionID,
			Count:      1,
			Timestamps: timestamps,
		}
		return tx.Create(&entry).Error
	}
	if err != nil {
		return err
	}

	var stamps []time.Time
	if len(entry.Timestamps) > 0 {
		if err := json.Unmarshal(entry.Timestamps, &stamps); err != nil {
			return fmt.Errorf("failed to decode ledger timestamps: %w", err)
		}
	}
	stamps = append(stamps, at)

	timestamps, err := json.Marshal(stamps)
	if err != nil {
		return fmt.Errorf("failed to encode ledger timestamps: %w", err)
	}

	result := tx.Model(&models.LedgerEntry{}).
		Where("ledger_id = ?", entry.LedgerID).
		Updates(map[string]interface{}{
			"count":      entry.Count + 1,
			"timestamps": timestamps,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ledger entry %d disappeared mid-transaction", entry.LedgerID)
	}
	return nil
}

// LedgerService reads performance ledgers. All writes happen inside review
// transactions; nothing outside this package mutates ledger rows.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// EntriesFor returns one user's ledger grouped by category.
func (s *LedgerService) EntriesFor(ownerID uint, role models.Role) (map[models.LedgerCategory][]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.db.Where("owner_id = ? AND owner_role = ?", ownerID, role).
		Order("update_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	grouped := make(map[models.LedgerCategory][]models.LedgerEntry)
	for _, entry := range entries {
		grouped[entry.Category] = append(grouped[entry.Category], entry)
	}
	return grouped, nil
}

// TotalsFor returns a user's occurrence totals per category.
func (s *LedgerService) TotalsFor(ownerID uint, role models.Role) (map[models.LedgerCategory]int, error) {
	var entries []models.LedgerEntry
	if err := s.db.Where("owner_id = ? AND owner_role = ?", ownerID, role).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	totals := make(map[models.LedgerCategory]int)
	for _, entry := range entries {
		totals[entry.Category] += entry.Count
	}
	return totals, nil
}
