package models

import (
	"time"
)

// Role is the closed set of account roles. Capability checks go through the
// predicates below instead of comparing role strings at call sites.
type Role string

const (
	RoleMaker   Role = "maker"
	RoleChecker Role = "checker"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMaker, RoleChecker, RoleAdmin:
		return true
	}
	return false
}

// CanAuthor reports whether the role may create and submit questions.
func (r Role) CanAuthor() bool {
	return r == RoleMaker
}

// CanReview reports whether the role may approve or reject questions.
func (r Role) CanReview() bool {
	return r == RoleChecker
}

// CanAdminister reports whether the role may manage users and papers.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

type User struct {
	UserID   uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name     string     `gorm:"column:name" json:"name"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	Role     Role       `gorm:"column:role;type:varchar(16);index" json:"role"`
	CreateAt time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
