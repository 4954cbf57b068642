package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"valid", "alice@example.com", true},
		{"valid with subdomain", "bob@mail.example.co.uk", true},
		{"valid with plus tag", "carol+signup@example.com", true},
		{"missing at", "alice.example.com", false},
		{"missing domain", "alice@", false},
		{"missing local part", "@example.com", false},
		{"embedded space", "alice smith@example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digit", "password123", true},
		{"digits only", "12345678", true},
		{"too short", "short1", false},
		{"no digit", "justletters", false},
		{"exactly eight no digit", "abcdefgh", false},
		{"exactly eight with digit", "abcdefg1", true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		iso2   string
		want   bool
	}{
		{"valid US", "2025550123", "US", true},
		{"valid GB", "07911123456", "GB", true},
		{"too short", "12345", "US", false},
		{"letters", "abcdefghij", "US", false},
		{"empty number", "", "US", false},
		{"empty country", "2025550123", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhoneNumber(tt.number, tt.iso2))
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"valid", "1990-05-17", true},
		{"leap day", "2000-02-29", true},
		{"wrong order", "17-05-1990", false},
		{"month out of range", "1990-13-01", false},
		{"not a date", "yesterday", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateDate(tt.date))
		})
	}
}
