package services

import (
	"errors"
	"testing"

	"question-bank-api/models"
)

func TestSubmitMovesOwnDraftsOnly(t *testing.T) {
	db := newTestDB(t)
	maker := createUser(t, db, "maker-1", models.RoleMaker)
	other := createUser(t, db, "maker-2", models.RoleMaker)
	draft1 := createQuestion(t, db, maker.UserID, models.StatusDraft)
	draft2 := createQuestion(t, db, maker.UserID, models.StatusDraft)
	foreign := createQuestion(t, db, other.UserID, models.StatusDraft)
	pending := createQuestion(t, db, maker.UserID, models.StatusPending)

	svc := NewWorkflowService(db)
	submitted, err := svc.Submit([]uint{draft1.QuestionID, draft2.QuestionID, foreign.QuestionID, pending.QuestionID}, maker.UserID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if submitted != 2 {
		t.Fatalf("expected 2 submitted, got %d", submitted)
	}

	for _, id := range []uint{draft1.QuestionID, draft2.QuestionID} {
		if got := reloadQuestion(t, db, id); got.Status != models.StatusPending {
			t.Fatalf("expected question %d pending, got %s", id, got.Status)
		}
	}
	if got := reloadQuestion(t, db, foreign.QuestionID); got.Status != models.StatusDraft {
		t.Fatalf("foreign draft must stay a draft, got %s", got.Status)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	maker := createUser(t, db, "maker-1", models.RoleMaker)
	approved := createQuestion(t, db, maker.UserID, models.StatusApproved)

	svc := NewWorkflowService(db)

	if _, err := svc.Submit(nil, maker.UserID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty batch, got %v", err)
	}
	if _, err := svc.Submit([]uint{approved.QuestionID}, maker.UserID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for batch without drafts, got %v", err)
	}
}

func TestResubmitKeepsPriorReviewContext(t *testing.T) {
	db := newTestDB(t)
	maker := createUser(t, db, "maker-1", models.RoleMaker)
	checker := createUser(t, db, "checker-1", models.RoleChecker)
	question := createQuestion(t, db, maker.UserID, models.StatusPending)

	if _, err := NewReviewService(db).Reject(question.QuestionID, checker.UserID, "Missing explanation"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	svc := NewWorkflowService(db)
	resubmitted, err := svc.Resubmit(question.QuestionID, maker.UserID)
	if err != nil {
		t.Fatalf("Resubmit returned error: %v", err)
	}

	if resubmitted.Status != models.StatusPending {
		t.Fatalf("expected status Pending, got %s", resubmitted.Status)
	}
	if resubmitted.CheckerID == nil || *resubmitted.CheckerID != checker.UserID {
		t.Fatalf("prior checker must be kept, got %v", resubmitted.CheckerID)
	}
	if resubmitted.CheckerComment != "Missing explanation" {
		t.Fatalf("prior comment must be kept, got %q", resubmitted.CheckerComment)
	}
}

func TestResubmitGuards(t *testing.T) {
	db := newTestDB(t)
	maker := createUser(t, db, "maker-1", models.RoleMaker)
	other := createUser(t, db, "maker-2", models.RoleMaker)
	checker := createUser(t, db, "checker-1", models.RoleChecker)
	question := createQuestion(t, db, maker.UserID, models.StatusPending)

	if _, err := NewReviewService(db).Reject(question.QuestionID, checker.UserID, "Wrong unit"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	svc := NewWorkflowService(db)

	if _, err := svc.Resubmit(question.QuestionID, other.UserID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another maker's question, got %v", err)
	}

	draft := createQuestion(t, db, maker.UserID, models.StatusDraft)
	if _, err := svc.Resubmit(draft.QuestionID, maker.UserID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for a draft, got %v", err)
	}
}
