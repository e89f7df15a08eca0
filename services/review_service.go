package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"question-bank-api/models"

	"gorm.io/gorm"
)

// NoCorrectionsComment is the rejection comment a checker leaves when the
// maker maintained the question needed no changes. If such a question is later
// approved untouched, the earlier rejection is counted against the original
// checker as a false rejection.
const NoCorrectionsComment = "No corrections required"

// ReviewService carries review decisions through the store as single
// transactions: the status change, the attribution to the acting checker and
// the ledger entries for everyone involved commit together or not at all.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Approve moves a pending question to Approved under checkerID, clears any
// prior rejection comment and credits the checker and the maker with an
// accepted entry. A question previously rejected with NoCorrectionsComment
// also charges the original checker with a false rejection.
func (s *ReviewService) Approve(questionID, checkerID uint) (*models.Question, error) {
	var question models.Question

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, "question_id = ?", questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: question %d", ErrNotFound, questionID)
			}
			return err
		}

		if !question.Status.CanTransitionTo(models.StatusApproved) {
			return fmt.Errorf("%w: cannot approve question in %s status", ErrInvalidState, question.Status)
		}

		priorChecker := question.CheckerID
		priorComment := question.CheckerComment
		now := time.Now()

		// The status condition repeats on the UPDATE so a review that lost a
		// race against a concurrent decision matches zero rows and aborts
		// instead of double-counting.
		result := tx.Model(&models.Question{}).
			Where("question_id = ? AND status = ?", questionID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":          models.StatusApproved,
				"checker_id":      checkerID,
				"checker_comment": "",
				"update_at":       now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: question %d is no longer pending", ErrInvalidState, questionID)
		}

		if priorComment == NoCorrectionsComment && priorChecker != nil {
			if err := appendLedger(tx, *priorChecker, models.RoleChecker, models.LedgerFalseRejection, questionID, now); err != nil {
				return err
			}
		}

		if err := appendLedger(tx, checkerID, models.RoleChecker, models.LedgerAccepted, questionID, now); err != nil {
			return err
		}
		if err := appendLedger(tx, question.MakerID, models.RoleMaker, models.LedgerAccepted, questionID, now); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Maker").First(&question, "question_id = ?", questionID).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Reject moves a pending question to Rejected under checkerID with the given
// comment and records a rejected entry for the checker and the maker. An
// empty comment fails before any transaction is opened.
func (s *ReviewService) Reject(questionID, checkerID uint, comment string) (*models.Question, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: rejection requires a comment", ErrValidation)
	}

	var question models.Question

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, "question_id = ?", questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: question %d", ErrNotFound, questionID)
			}
			return err
		}

		if !question.Status.CanTransitionTo(models.StatusRejected) {
			return fmt.Errorf("%w: cannot reject question in %s status", ErrInvalidState, question.Status)
		}

		now := time.Now()
		result := tx.Model(&models.Question{}).
			Where("question_id = ? AND status = ?", questionID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":          models.StatusRejected,
				"checker_id":      checkerID,
				"checker_comment": comment,
				"update_at":       now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: question %d is no longer pending", ErrInvalidState, questionID)
		}

		if err := appendLedger(tx, checkerID, models.RoleChecker, models.LedgerRejected, questionID, now); err != nil {
			return err
		}
		if err := appendLedger(tx, question.MakerID, models.RoleMaker, models.LedgerRejected, questionID, now); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Maker").First(&question, "question_id = ?", questionID).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// BulkApprove approves every pending question in questionIDs as one atomic
// batch and returns how many were transitioned. Ids that are missing or not
// pending are skipped rather than failing the batch; a batch where nothing
// matches fails with ErrNotFound. The status updates and every ledger append
// for the whole batch commit together.
func (s *ReviewService) BulkApprove(questionIDs []uint, checkerID uint) (int, error) {
	if len(questionIDs) == 0 {
		return 0, fmt.Errorf("%w: no question ids provided", ErrValidation)
	}

	approved := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var questions []models.Question
		if err := tx.Where("question_id IN ? AND status = ?", questionIDs, models.StatusPending).
			Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return fmt.Errorf("%w: no pending questions in batch", ErrNotFound)
		}

		matchedIDs := make([]uint, 0, len(questions))
		for _, q := range questions {
			matchedIDs = append(matchedIDs, q.QuestionID)
		}

		now := time.Now()
		result := tx.Model(&models.Question{}).
			Where("question_id IN ? AND status = ?", matchedIDs, models.StatusPending).
			Updates(map[string]interface{}{
				"status":          models.StatusApproved,
				"checker_id":      checkerID,
				"checker_comment": "",
				"update_at":       now,
			})
		if result.Error != nil {
			return result.Error
		}

		for _, q := range questions {
			if q.CheckerComment == NoCorrectionsComment && q.CheckerID != nil {
				if err := appendLedger(tx, *q.CheckerID, models.RoleChecker, models.LedgerFalseRejection, q.QuestionID, now); err != nil {
					return err
				}
			}
			if err := appendLedger(tx, checkerID, models.RoleChecker, models.LedgerAccepted, q.QuestionID, now); err != nil {
				return err
			}
			if err := appendLedger(tx, q.MakerID, models.RoleMaker, models.LedgerAccepted, q.QuestionID, now); err != nil {
				return err
			}
		}

		approved = len(questions)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return approved, nil
}
