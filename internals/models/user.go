package models

import (
	"gorm.io/gorm"
)

// User is the authoritative identity record. Rows are created by the approval
// transition or by the createadmin bootstrap tool, never directly by signup.
type User struct {
	gorm.Model
	Email            string `gorm:"column:email;uniqueIndex"`
	Username         string `gorm:"column:username;uniqueIndex"`
	Password         string `gorm:"column:password"` // bcrypt hash
	PhoneCode        string `gorm:"column:phone_code"`
	ContactNumber    string `gorm:"column:contact_number"`
	Country          string `gorm:"column:country"`
	State            string `gorm:"column:state"`
	City             string `gorm:"column:city"`
	OrganizationName string `gorm:"column:organization_name"`
	Gender           string `gorm:"column:gender"`

	// Admin dashboard access
	IsAdmin bool `gorm:"column:is_admin;default:false"`

	// Multi-Factor Authentication (admin accounts)
	TwoFAEnabled bool   `gorm:"column:two_fa_enabled;default:false"`
	TwoFASecret  string `gorm:"column:two_fa_secret;default:null"`
}
