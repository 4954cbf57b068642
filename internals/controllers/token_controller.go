package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TokenController struct {
	DB           *gorm.DB
	TokenManager *auth.TokenManager
}

func NewTokenController(db *gorm.DB, tokenManager *auth.TokenManager) *TokenController {
	return &TokenController{DB: db, TokenManager: tokenManager}
}

// Validate confirms the session set up by RequireAuth.
func (t *TokenController) Validate(c *gin.Context) {
	value, _ := c.Get("user")
	user := value.(models.User)

	c.JSON(http.StatusOK, gin.H{
		"message":  "You are logged in!",
		"email":    user.Email,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})
}

// RefreshToken rotates the session: the old refresh token is deleted and a
// new pair is issued.
func (t *TokenController) RefreshToken(c *gin.Context) {
	refreshTokenStr, err := c.Cookie("RefreshToken")
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var session models.Session
	if err := t.DB.Where("refresh_token = ?", refreshTokenStr).First(&session).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found or revoked"})
		return
	}

	if time.Now().After(session.ExpiresAt) {
		t.DB.Unscoped().Delete(&session)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return
	}

	t.DB.Unscoped().Delete(&session)

	tokens, err := t.TokenManager.GenerateAndSetToken(c, session.UserID)
	if err != nil {
		log.Printf("Rotation failure for user %d: %v", session.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session rotation failed. Please log in again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed", "access_token": tokens.AccessToken})
}
