package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use credential-recovery token. At most one active
// (unused, unexpired) row exists per email; issuing a new token marks all
// prior unused ones as used.
type PasswordReset struct {
	gorm.Model
	Email     string    `gorm:"column:email;index"`
	Token     string    `gorm:"column:token;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	Used      bool      `gorm:"column:used;default:false"`
}
