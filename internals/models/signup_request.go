package models

import (
	"time"

	"gorm.io/gorm"
)

// Signup request lifecycle. pending_otp and pending_approval are the active
// states; approved and rejected are terminal.
const (
	StatusPendingOTP      = "pending_otp"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// ActiveStatuses lists the non-terminal request states. A request in one of
// these states reserves its email, user id and contact number.
var ActiveStatuses = []string{StatusPendingOTP, StatusPendingApproval}

// SignupRequest is a prospective user's in-flight application. Exactly one
// request exists per email at a time: a resubmission replaces the prior row
// (the email uniqueIndex is the backstop for that upsert).
type SignupRequest struct {
	gorm.Model
	RequestTimestamp time.Time `gorm:"column:request_timestamp"`
	Status           string    `gorm:"column:status;index"`
	Email            string    `gorm:"column:email;uniqueIndex"`
	// user_id and contact_number are plain indexes: a rejected request must
	// stop reserving them, so uniqueness against active requests is enforced
	// by the checker, not the schema.
	UserID           string    `gorm:"column:user_id;index"`
	FirstName        string    `gorm:"column:first_name"`
	MiddleName       string    `gorm:"column:middle_name"`
	LastName         string    `gorm:"column:last_name"`
	CountryCode      string    `gorm:"column:country_code"`
	ContactNumber    string    `gorm:"column:contact_number;index"`
	DateOfBirth      string    `gorm:"column:date_of_birth"` // ISO date, validated at write time
	Gender           string    `gorm:"column:gender"`
	OrganizationName string    `gorm:"column:organization_name"`
	Country          string    `gorm:"column:country"`
	State            string    `gorm:"column:state"`
	City             string    `gorm:"column:city"`
	UserPassword     string    `gorm:"column:user_password"` // bcrypt hash, carried into User on approval

	// Only meaningful while Status is pending_otp; cleared on verification.
	OTP          string    `gorm:"column:otp"`
	OTPExpiresAt time.Time `gorm:"column:otp_expires_at"`
}

// IsTerminal reports whether the request reached a final decision.
func (r *SignupRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// FullName joins the name parts, skipping a blank middle name.
func (r *SignupRequest) FullName() string {
	if r.MiddleName == "" {
		return r.FirstName + " " + r.LastName
	}
	return r.FirstName + " " + r.MiddleName + " " + r.LastName
}
