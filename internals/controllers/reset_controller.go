package controllers

import (
	"errors"
	"net/http"

	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/passwordreset"
	"github.com/ramancoder123/dicideon/internals/validators"

	"github.com/gin-gonic/gin"
)

// ResetRequestMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const ResetRequestMessage = "If an account with that email exists, a password reset link has been sent."

type ResetController struct {
	Resets *passwordreset.Service
}

func NewResetController(resets *passwordreset.Service) *ResetController {
	return &ResetController{Resets: resets}
}

type ForgotPasswordReqBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordReqBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ForgotPassword issues a reset token. The response is indistinguishable
// between existing and unknown emails; only a server-side configuration or
// delivery problem breaks the pattern, as a generic service error.
func (r *ResetController) ForgotPassword(c *gin.Context) {
	var body ForgotPasswordReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	_, err := r.Resets.RequestReset(body.Email)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable. Please try again later."})
			return
		}
		var notificationErr *notify.NotificationError
		if errors.As(err, &notificationErr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable. Please try again later."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": ResetRequestMessage})
}

// VerifyResetToken lets the frontend check a link before showing the form.
func (r *ResetController) VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Missing token"})
		return
	}

	email, err := r.Resets.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
		return
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "This reset link is invalid or has expired."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "email": email})
}

// ResetPassword consumes the token and sets the new password. A second
// submission with the same token fails — the token is single use.
func (r *ResetController) ResetPassword(c *gin.Context) {
	var body ResetPasswordReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validators.ValidatePassword(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain a digit."})
		return
	}

	ok, err := r.Resets.Consume(body.Token, body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This reset link is invalid or has expired."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been reset successfully. You can now log in."})
}
