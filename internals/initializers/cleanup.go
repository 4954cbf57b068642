package initializers

import (
	"log"
	"time"

	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/models"
)

// StartJanitor launches the background cleanup loop. Everything here is a
// hard delete (Unscoped) so the database doesn't grow indefinitely.
//
// Signup requests themselves are never touched: terminal requests are kept as
// the audit trail, and active ones belong to the state machine. The only
// exception is a pending_otp request whose code expired more than 24 hours
// ago — past the retry window, the applicant has abandoned the signup.
func StartJanitor() {
	cleanupInterval := config.GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 30, true)
	ticker := time.NewTicker(time.Duration(cleanupInterval) * time.Minute)

	go func() {
		for range ticker.C {
			now := time.Now()

			// 1. Expired login sessions (tampered, ignored at logout, or simply old)
			sessions := DB.Unscoped().Where("expires_at < ?", now).Delete(&models.Session{})

			// 2. Blacklist entries whose token would have expired naturally by now
			blacklist := DB.Unscoped().Where("expires_at < ?", now).Delete(&models.Blacklist{})

			// 3. Used or expired password reset tokens
			resets := DB.Unscoped().Where("used = ? OR expires_at < ?", true, now).Delete(&models.PasswordReset{})

			// 4. Abandoned signups: pending_otp with the code expired over 24h ago
			requests := DB.Unscoped().
				Where("status = ? AND otp_expires_at < ?", models.StatusPendingOTP, now.Add(-24*time.Hour)).
				Delete(&models.SignupRequest{})

			total := sessions.RowsAffected + blacklist.RowsAffected + resets.RowsAffected + requests.RowsAffected
			if total > 0 {
				log.Printf("Janitor: cleaned %d sessions, %d blacklisted tokens, %d reset tokens, %d abandoned signups",
					sessions.RowsAffected, blacklist.RowsAffected, resets.RowsAffected, requests.RowsAffected)
			}
		}
	}()
}
