// Package passwordreset implements the token-based credential recovery flow:
// a single-use, hour-long token per email, delivered as a link. Issuing a
// new token invalidates all prior unused ones; consumption flips the used
// flag exactly once via a conditional update, so a double submission loses
// the race at the store rather than resetting the password twice.
package passwordreset

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/notify"

	"gorm.io/gorm"
)

// tokenTTL is how long a reset token stays valid.
const tokenTTL = time.Hour

// Service drives the password reset lifecycle against the store.
type Service struct {
	DB         *gorm.DB
	Dispatcher notify.Dispatcher
}

func NewService(db *gorm.DB, dispatcher notify.Dispatcher) *Service {
	return &Service{DB: db, Dispatcher: dispatcher}
}

// generateToken returns a URL-safe opaque token with 256 bits of entropy.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RequestReset issues a reset token for email and mails the link. It returns
// ("", nil) when no such user exists — the caller must present the same
// user-facing message either way, to prevent account enumeration.
//
// Invalidating prior tokens and inserting the new one happen in a single
// transaction, so a concurrent reader never sees two active tokens. A mail
// failure after commit surfaces as *notify.NotificationError.
func (s *Service) RequestReset(email string) (string, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.PasswordReset{}).
			Where("email = ? AND used = ?", email, false).
			Update("used", true).Error
		if err != nil {
			return err
		}
		reset := models.PasswordReset{
			Email:     email,
			Token:     token,
			ExpiresAt: time.Now().Add(tokenTTL),
		}
		return tx.Create(&reset).Error
	})
	if err != nil {
		return "", err
	}

	if err := s.Dispatcher.Send(email, notify.TemplatePasswordReset, map[string]string{"token": token}); err != nil {
		return token, &notify.NotificationError{Err: err}
	}
	return token, nil
}

// VerifyToken returns the owning email if the token exists, is unused and
// unexpired; otherwise "". Read-only.
func (s *Service) VerifyToken(token string) (string, error) {
	var reset models.PasswordReset
	err := s.DB.Where("token = ? AND used = ?", token, false).First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if time.Now().After(reset.ExpiresAt) {
		return "", nil
	}
	return reset.Email, nil
}

// Consume sets the user's password to newPassword and marks the token used.
// Returns false without side effects if the token is invalid, expired or
// already used — including when a concurrent Consume with the same token got
// there first.
func (s *Service) Consume(token string, newPassword string) (bool, error) {
	email, err := s.VerifyToken(token)
	if err != nil || email == "" {
		return false, err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	consumed := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// The conditional update is the single-use guarantee: only one caller
		// can flip used from false to true.
		res := tx.Model(&models.PasswordReset{}).
			Where("token = ? AND used = ? AND expires_at > ?", token, false, time.Now()).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		consumed = true
		return tx.Model(&models.User{}).
			Where("email = ?", email).
			Update("password", hash).Error
	})
	if err != nil {
		return false, err
	}
	return consumed, nil
}
