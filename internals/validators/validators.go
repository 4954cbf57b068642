package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var validate = validator.New()

// ValidateEmail checks email syntax with the same engine gin's binding uses,
// so the boundary and the core agree on what a valid address is.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return validate.Var(email, "required,email") == nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// at least one digit.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, c := range password {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

// ValidatePhoneNumber validates a phone number against a country ISO2 code.
func ValidatePhoneNumber(phoneNumber, countryISO2 string) bool {
	if phoneNumber == "" || countryISO2 == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(phoneNumber, countryISO2)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// ValidateDate checks an ISO YYYY-MM-DD date. Dates are parsed at write time
// so no stored row can become unparseable later.
func ValidateDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
