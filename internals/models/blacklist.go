package models

import (
	"time"

	"gorm.io/gorm"
)

// Blacklist holds JTIs of access tokens revoked before their natural expiry
// (logout). Entries are purged by the janitor once the token would have
// expired anyway.
type Blacklist struct {
	gorm.Model
	Jti       string    `gorm:"column:jti;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
}
