package auth

import (
	"github.com/pquerna/otp/totp"
)

// ValidateTOTP checks a time-based one-time code against a TOTP secret.
func ValidateTOTP(code string, secret string) bool {
	return totp.Validate(code, secret)
}
