package initializers

import (
	"log"

	"github.com/ramancoder123/dicideon/internals/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle, set by ConnectToDb at startup.
var DB *gorm.DB

// ConnectToDb opens the sqlite database named by DB_URL. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey — the
// registration service relies on that to report approval races.
func ConnectToDb() {
	dsn := config.GetEnv("DB_URL")

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB at %s: %v", dsn, err)
	}
}
