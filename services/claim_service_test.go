package services

import (
	"errors"
	"sync"
	"testing"

	"question-bank-api/models"
)

func TestClaimAssignsPaperToFirstCaller(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	makerA := createUser(t, db, "maker-a", models.RoleMaker)
	makerB := createUser(t, db, "maker-b", models.RoleMaker)
	paper := createPaper(t, db, "physics-2024.pdf", admin.UserID)

	svc := NewClaimService(db)

	claimed, err := svc.Claim(paper.PaperID, makerA.UserID)
	if err != nil {
		t.Fatalf("first claim returned error: %v", err)
	}
	if claimed.ClaimedBy == nil || *claimed.ClaimedBy != makerA.UserID {
		t.Fatalf("expected paper claimed by %d, got %v", makerA.UserID, claimed.ClaimedBy)
	}

	if _, err := svc.Claim(paper.PaperID, makerB.UserID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second claim, got %v", err)
	}

	var got models.Paper
	if err := db.First(&got, "paper_id = ?", paper.PaperID).Error; err != nil {
		t.Fatalf("failed to reload paper: %v", err)
	}
	if got.ClaimedBy == nil || *got.ClaimedBy != makerA.UserID {
		t.Fatalf("claim must stay with the first maker, got %v", got.ClaimedBy)
	}
}

func TestClaimMissingPaper(t *testing.T) {
	db := newTestDB(t)
	maker := createUser(t, db, "maker-a", models.RoleMaker)

	svc := NewClaimService(db)
	if _, err := svc.Claim(9999, maker.UserID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestConcurrentClaimsProduceExactlyOneWinner(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	paper := createPaper(t, db, "chemistry-2024.pdf", admin.UserID)

	const claimants = 12
	makers := make([]models.User, claimants)
	for i := range makers {
		makers[i] = createUser(t, db, "maker-"+string(rune('a'+i)), models.RoleMaker)
	}

	svc := NewClaimService(db)

	var wg sync.WaitGroup
	results := make(chan error, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(makerID uint) {
			defer wg.Done()
			_, err := svc.Claim(paper.PaperID, makerID)
			results <- err
		}(makers[i].UserID)
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected claim error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", wins)
	}
	if conflicts != claimants-1 {
		t.Fatalf("expected %d conflicts, got %d", claimants-1, conflicts)
	}
}

func TestListAvailableExcludesClaimed(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	maker := createUser(t, db, "maker-a", models.RoleMaker)
	open := createPaper(t, db, "open.pdf", admin.UserID)
	taken := createPaper(t, db, "taken.pdf", admin.UserID)

	svc := NewClaimService(db)
	if _, err := svc.Claim(taken.PaperID, maker.UserID); err != nil {
		t.Fatalf("claim returned error: %v", err)
	}

	available, err := svc.ListAvailable()
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	if len(available) != 1 || available[0].PaperID != open.PaperID {
		t.Fatalf("expected only the unclaimed paper, got %+v", available)
	}

	mine, err := svc.ListClaimedBy(maker.UserID)
	if err != nil {
		t.Fatalf("ListClaimedBy returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].PaperID != taken.PaperID {
		t.Fatalf("expected the claimed paper, got %+v", mine)
	}
}
