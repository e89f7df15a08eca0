package services

import (
	"errors"
	"fmt"
	"time"

	"question-bank-api/models"

	"gorm.io/gorm"
)

// WorkflowService handles the maker-side lifecycle moves: sending drafts into
// the review queue and putting a rejected question back in it.
type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// Submit moves the maker's own drafts among questionIDs to Pending and
// returns how many were submitted. Ids that are not the maker's drafts are
// skipped; a batch matching nothing fails with ErrNotFound.
func (s *WorkflowService) Submit(questionIDs []uint, makerID uint) (int, error) {
	if len(questionIDs) == 0 {
		return 0, fmt.Errorf("%w: no question ids provided", ErrValidation)
	}

	result := s.db.Model(&models.Question{}).
		Where("question_id IN ? AND maker_id = ? AND status = ?", questionIDs, makerID, models.StatusDraft).
		Updates(map[string]interface{}{
			"status":    models.StatusPending,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: no submittable drafts in batch", ErrNotFound)
	}
	return int(result.RowsAffected), nil
}

// Resubmit puts one of the maker's rejected questions back into the review
// queue. The previous checker and comment stay on the question as context
// until the next decision overwrites them.
func (s *WorkflowService) Resubmit(questionID, makerID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "question_id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %d", ErrNotFound, questionID)
		}
		return nil, err
	}

	if question.MakerID != makerID {
		return nil, fmt.Errorf("%w: question %d belongs to another maker", ErrNotFound, questionID)
	}
	if question.Status != models.StatusRejected || !question.Status.CanTransitionTo(models.StatusPending) {
		return nil, fmt.Errorf("%w: cannot resubmit question in %s status", ErrInvalidState, question.Status)
	}

	result := s.db.Model(&models.Question{}).
		Where("question_id = ? AND status = ?", questionID, models.StatusRejected).
		Updates(map[string]interface{}{
			"status":    models.StatusPending,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: question %d is no longer rejected", ErrInvalidState, questionID)
	}

	if err := s.db.First(&question, "question_id = ?", questionID).Error; err != nil {
		return nil, err
	}
	return &question, nil
}
