package services

import (
	"fmt"

	"question-bank-api/models"

	"gorm.io/gorm"
)

// ClaimService assigns papers to makers. A paper belongs to at most one maker
// for its whole lifetime; the claim itself is a single conditional update so
// concurrent attempts on the same paper produce exactly one winner.
type ClaimService struct {
	db *gorm.DB
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{db: db}
}

// Claim marks the paper as taken by makerID, but only if nobody holds it yet.
// The condition rides on the UPDATE statement itself, so there is no window
// between check and write. A claim that matches zero rows — already claimed or
// no such paper — fails with ErrConflict either way; the caller's reaction is
// the same: pick another paper.
func (s *ClaimService) Claim(paperID, makerID uint) (*models.Paper, error) {
	result := s.db.Model(&models.Paper{}).
		Where("paper_id = ? AND claimed_by IS NULL", paperID).
		Update("claimed_by", makerID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: paper already claimed", ErrConflict)
	}

	var paper models.Paper
	if err := s.db.First(&paper, "paper_id = ?", paperID).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

// ListAvailable returns papers nobody has claimed yet.
func (s *ClaimService) ListAvailable() ([]models.Paper, error) {
	var papers []models.Paper
	if err := s.db.Where("claimed_by IS NULL").Order("create_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

// ListClaimedBy returns the papers held by one maker.
func (s *ClaimService) ListClaimedBy(makerID uint) ([]models.Paper, error) {
	var papers []models.Paper
	if err := s.db.Where("claimed_by = ?", makerID).Order("create_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

// ListAll returns every paper with its claim state.
func (s *ClaimService) ListAll() ([]models.Paper, error) {
	var papers []models.Paper
	if err := s.db.Preload("Claimer").Order("create_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}
