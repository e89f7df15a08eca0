package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionStatus is the question lifecycle state.
type QuestionStatus string

const (
	StatusDraft    QuestionStatus = "Draft"
	StatusPending  QuestionStatus = "Pending"
	StatusApproved QuestionStatus = "Approved"
	StatusRejected QuestionStatus = "Rejected"
)

// Valid reports whether s is a known lifecycle status.
func (s QuestionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// questionTransitions lists the allowed lifecycle moves. Draft and Rejected
// re-enter the review queue via Pending; only Pending questions can be decided.
var questionTransitions = map[QuestionStatus][]QuestionStatus{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s QuestionStatus) CanTransitionTo(next QuestionStatus) bool {
	for _, allowed := range questionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Complexity is the difficulty tier of a question.
type Complexity string

const (
	ComplexityEasy   Complexity = "Easy"
	ComplexityMedium Complexity = "Medium"
	ComplexityHard   Complexity = "Hard"
)

func (c Complexity) Valid() bool {
	switch c {
	case ComplexityEasy, ComplexityMedium, ComplexityHard:
		return true
	}
	return false
}

// QuestionOption is one answer choice. Stored inside the question row as JSON.
type QuestionOption struct {
	Text      string `json:"text"`
	Image     string `json:"image,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	QuestionID     uint           `gorm:"primaryKey;column:question_id" json:"question_id"`
	QuestionText   string         `gorm:"column:question_text;type:text" json:"question_text"`
	QuestionImage  string         `gorm:"column:question_image" json:"question_image,omitempty"`
	Options        datatypes.JSON `gorm:"column:options" json:"options"`
	Explanation    string         `gorm:"column:explanation;type:text" json:"explanation"`
	Reference      string         `gorm:"column:reference" json:"reference,omitempty"`
	Course         string         `gorm:"column:course" json:"course"`
	Subject        string         `gorm:"column:subject" json:"subject"`
	Unit           string         `gorm:"column:unit" json:"unit"`
	Chapter        string         `gorm:"column:chapter" json:"chapter"`
	Complexity     Complexity     `gorm:"column:complexity;type:varchar(16)" json:"complexity"`
	Keywords       datatypes.JSON `gorm:"column:keywords" json:"keywords"`
	Status         QuestionStatus `gorm:"column:status;type:varchar(16);index" json:"status"`
	MakerID        uint           `gorm:"column:maker_id;index" json:"maker_id"`
	CheckerID      *uint          `gorm:"column:checker_id" json:"checker_id,omitempty"`
	CheckerComment string         `gorm:"column:checker_comment;type:text" json:"checker_comment"`
	PaperID        *uint          `gorm:"column:paper_id" json:"paper_id,omitempty"`
	PositionLabel  string         `gorm:"column:position_label" json:"position_label,omitempty"`
	CreateAt       time.Time      `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt       time.Time      `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	// Relations
	Maker   *User  `gorm:"foreignKey:MakerID" json:"maker,omitempty"`
	Checker *User  `gorm:"foreignKey:CheckerID" json:"checker,omitempty"`
	Paper   *Paper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
