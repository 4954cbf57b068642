package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hashing speed against brute-force resistance. 10 keeps
// signup latency acceptable on the small instance this runs on.
const bcryptCost = 10

// HashPassword generates a salted bcrypt hash. Output differs between calls
// for the same input; compare with VerifyPassword, never with ==.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash. A
// malformed stored hash simply fails verification, it never panics.
func VerifyPassword(password string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
