package models

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerCategory partitions ledger entries by review outcome.
type LedgerCategory string

const (
	LedgerAccepted       LedgerCategory = "accepted"
	LedgerRejected       LedgerCategory = "rejected"
	LedgerFalseRejection LedgerCategory = "falseRejection"
)

// LedgerEntry is one row of a user's performance ledger: how many times a
// given review outcome was recorded for a given question, with the timestamp
// of every occurrence. The unique index makes repeated outcomes increment the
// existing row instead of duplicating it.
type LedgerEntry struct {
	LedgerID   uint           `gorm:"primaryKey;column:ledger_id" json:"ledger_id"`
	OwnerID    uint           `gorm:"column:owner_id;uniqueIndex:idx_ledger_owner_entry" json:"owner_id"`
	OwnerRole  Role           `gorm:"column:owner_role;type:varchar(16);uniqueIndex:idx_ledger_owner_entry" json:"owner_role"`
	Category   LedgerCategory `gorm:"column:category;type:varchar(24);uniqueIndex:idx_ledger_owner_entry" json:"category"`
	QuestionID uint           `gorm:"column:question_id;uniqueIndex:idx_ledger_owner_entry" json:"question_id"`
	Count      int            `gorm:"column:count" json:"count"`
	Timestamps datatypes.JSON `gorm:"column:timestamps" json:"timestamps"`
	CreateAt   time.Time      `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt   time.Time      `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
