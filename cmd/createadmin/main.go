// Command createadmin provisions an administrator account directly in the
// users table, bypassing the signup workflow. Run it once against a fresh
// database so someone can log in and start approving requests.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/initializers"
	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/validators"

	"golang.org/x/term"
)

func main() {
	initializers.LoadEnvVariables()
	initializers.ConnectToDb()
	initializers.SyncDatabase()

	appName := config.GetEnvAsStr("APP_NAME", "Dicideon")
	fmt.Printf("--- Create %s Admin User ---\n", appName)

	reader := bufio.NewReader(os.Stdin)

	email := prompt(reader, "Admin email: ")
	if !validators.ValidateEmail(email) {
		log.Fatal("Invalid email address")
	}

	username := prompt(reader, "Admin username: ")
	if username == "" {
		log.Fatal("Username is required")
	}

	fmt.Print("Password (input hidden): ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	if !validators.ValidatePassword(password) {
		log.Fatal("Password must be at least 8 characters long and contain a digit")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Email:    email,
		Username: username,
		Password: hash,
		IsAdmin:  true,
	}
	if err := initializers.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user (email or username may already exist): %v", err)
	}

	fmt.Printf("Admin user %s created successfully.\n", email)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
