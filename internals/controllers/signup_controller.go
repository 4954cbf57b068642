package controllers

import (
	"errors"
	"net/http"

	"github.com/ramancoder123/dicideon/internals/locations"
	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/registration"
	"github.com/ramancoder123/dicideon/internals/validators"

	"github.com/gin-gonic/gin"
)

type SignupController struct {
	Registration *registration.Service
	Locations    *locations.Store
}

func NewSignupController(reg *registration.Service, locs *locations.Store) *SignupController {
	return &SignupController{Registration: reg, Locations: locs}
}

type SignupReqBody struct {
	Email            string `json:"email" binding:"required,email"`
	UserID           string `json:"user_id" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	MiddleName       string `json:"middle_name"`
	LastName         string `json:"last_name" binding:"required"`
	ContactNumber    string `json:"contact_number" binding:"required"`
	DateOfBirth      string `json:"date_of_birth" binding:"required"`
	Gender           string `json:"gender" binding:"required"`
	OrganizationName string `json:"organization_name" binding:"required"`
	Country          string `json:"country" binding:"required"`
	State            string `json:"state" binding:"required"`
	City             string `json:"city" binding:"required"`
	Password         string `json:"password" binding:"required"`
	ConfirmPassword  string `json:"confirm_password" binding:"required"`
}

type OTPReqBody struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResendReqBody struct {
	Email string `json:"email" binding:"required,email"`
}

// Signup validates the submission at the boundary and hands it to the state
// machine. Field-format problems and uniqueness conflicts both come back as
// a list of messages; the request is never partially applied.
func (s *SignupController) Signup(c *gin.Context) {
	var body SignupReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var fieldErrors []string
	if body.Password != body.ConfirmPassword {
		fieldErrors = append(fieldErrors, "Passwords do not match.")
	}
	if !validators.ValidatePassword(body.Password) {
		fieldErrors = append(fieldErrors, "Password must be at least 8 characters long and contain a digit.")
	}
	if !validators.ValidateDate(body.DateOfBirth) {
		fieldErrors = append(fieldErrors, "Date of birth must be a valid date in YYYY-MM-DD format.")
	}

	iso2 := s.Locations.ISO2(body.Country)
	if iso2 == "" {
		fieldErrors = append(fieldErrors, "Unknown country.")
	} else if !validators.ValidatePhoneNumber(body.ContactNumber, iso2) {
		fieldErrors = append(fieldErrors, "Contact number is not valid for the selected country.")
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	expiresAt, err := s.Registration.Initiate(registration.SignupForm{
		Email:            body.Email,
		UserID:           body.UserID,
		FirstName:        body.FirstName,
		MiddleName:       body.MiddleName,
		LastName:         body.LastName,
		CountryCode:      s.Locations.PhoneCode(body.Country),
		ContactNumber:    body.ContactNumber,
		DateOfBirth:      body.DateOfBirth,
		Gender:           body.Gender,
		OrganizationName: body.OrganizationName,
		Country:          body.Country,
		State:            body.State,
		City:             body.City,
		Password:         body.Password,
	})

	if err != nil {
		var validationErr *registration.ValidationError
		var notificationErr *notify.NotificationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusConflict, gin.H{"errors": validationErr.Messages})
		case errors.Is(err, notify.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable. Please try again later."})
		case errors.As(err, &notificationErr):
			// The request is saved; only this delivery attempt failed.
			c.JSON(http.StatusOK, gin.H{
				"message":        "Your request was received, but the verification email could not be sent. Please use the resend option.",
				"otp_expires_at": expiresAt,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process signup request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Please check your email for the verification code. The code expires in 10 minutes.",
		"otp_expires_at": expiresAt,
	})
}

// VerifyOTP advances a request to pending_approval when the code matches.
// The caller may retry on failure; no state changes until the code is right.
func (s *SignupController) VerifyOTP(c *gin.Context) {
	var body OTPReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ok, err := s.Registration.Verify(body.Email, body.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified. Your request is now awaiting administrator approval."})
}

// ResendOTP regenerates the code for a pending signup.
func (s *SignupController) ResendOTP(c *gin.Context) {
	var body ResendReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	expiresAt, err := s.Registration.Resend(body.Email)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable. Please try again later."})
			return
		}
		var notificationErr *notify.NotificationError
		if !errors.As(err, &notificationErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh code"})
			return
		}
		// Fall through: same generic response, the applicant can retry.
	}

	// Generic success either way to prevent probing for pending signups.
	resp := gin.H{"message": "If a pending signup exists for this email, a new code has been sent."}
	if expiresAt != nil {
		resp["otp_expires_at"] = expiresAt
	}
	c.JSON(http.StatusOK, resp)
}
