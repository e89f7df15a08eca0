package services

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"question-bank-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema. A single
// connection keeps concurrent test goroutines serialized at the pool instead
// of tripping sqlite's file lock.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "question_bank_test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Paper{},
		&models.Question{},
		&models.LedgerEntry{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func createQuestion(t *testing.T, db *gorm.DB, makerID uint, status models.QuestionStatus) models.Question {
	t.Helper()
	options, _ := json.Marshal([]models.QuestionOption{
		{Text: "4", IsCorrect: true},
		{Text: "5"},
	})
	question := models.Question{
		QuestionText: "What is 2 + 2?",
		Options:      options,
		Subject:      "Mathematics",
		Complexity:   models.ComplexityEasy,
		Status:       status,
		MakerID:      makerID,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	return question
}

func createPaper(t *testing.T, db *gorm.DB, name string, uploadedBy uint) models.Paper {
	t.Helper()
	paper := models.Paper{
		Name:       name,
		StoredPath: "/tmp/" + name,
		SourceURL:  "/papers/files/" + name,
		MimeType:   "application/pdf",
		UploadedBy: uploadedBy,
	}
	if err := db.Create(&paper).Error; err != nil {
		t.Fatalf("failed to create paper %s: %v", name, err)
	}
	return paper
}

// findLedgerEntry fetches the unique ledger row for the given key, or nil if
// no such row exists.
func findLedgerEntry(t *testing.T, db *gorm.DB, ownerID uint, role models.Role, category models.LedgerCategory, questionID uint) *models.LedgerEntry {
	t.Helper()
	var entry models.LedgerEntry
	err := db.Where(
		"owner_id = ? AND owner_role = ? AND category = ? AND question_id = ?",
		ownerID, role, category, questionID,
	).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to fetch ledger entry: %v", err)
	}
	return &entry
}

func ledgerTimestamps(t *testing.T, entry *models.LedgerEntry) []time.Time {
	t.Helper()
	var stamps []time.Time
	if err := json.Unmarshal(entry.Timestamps, &stamps); err != nil {
		t.Fatalf("failed to decode ledger timestamps: %v", err)
	}
	return stamps
}

func reloadQuestion(t *testing.T, db *gorm.DB, questionID uint) models.Question {
	t.Helper()
	var question models.Question
	if err := db.First(&question, "question_id = ?", questionID).Error; err != nil {
		t.Fatalf("failed to reload question %d: %v", questionID, err)
	}
	return question
}
