package initializers

import (
	"github.com/ramancoder123/dicideon/internals/models"
)

// SyncDatabase creates/updates the schema. Safe to run on every start.
func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.SignupRequest{},
		&models.PasswordReset{},
		&models.Session{},
		&models.Blacklist{},
	)
	if err != nil {
		panic("Failed to migrate database")
	}
}
