package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthController struct {
	DB           *gorm.DB
	TokenManager *auth.TokenManager
}

func NewAuthController(db *gorm.DB, tokenManager *auth.TokenManager) *AuthController {
	return &AuthController{
		DB:           db,
		TokenManager: tokenManager,
	}
}

type LoginReqBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an approved user. Only accounts materialized by the
// approval transition (or createadmin) exist in the users table, so
// existence already implies approval.
func (a *AuthController) Login(c *gin.Context) {
	var body LoginReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	result := a.DB.Where("email = ?", body.Email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !auth.VerifyPassword(body.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.TwoFAEnabled {
		// No session yet; the client must come back with a TOTP code
		c.JSON(http.StatusOK, gin.H{
			"mfa_required": true,
			"email":        user.Email,
			"message":      "Please enter your 2FA code to continue",
		})
		return
	}

	tokenMetadata, err := a.TokenManager.GenerateAndSetToken(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully", "access_token": tokenMetadata.AccessToken, "refresh_token": tokenMetadata.RefreshToken})
}

// Logout revokes the session and blacklists the access token's JTI until it
// would have expired anyway.
func (a *AuthController) Logout(c *gin.Context) {
	acctokenStr, accErr := c.Cookie("Authorization")
	reftokenStr, refErr := c.Cookie("RefreshToken")

	if accErr != nil && refErr != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	if reftokenStr != "" {
		// Invalid/tampered tokens simply match nothing; the janitor is the
		// fallback for sessions that slip through.
		a.DB.Unscoped().Where("refresh_token = ?", reftokenStr).Delete(&models.Session{})
	}

	if acctokenStr != "" {
		token, _ := jwt.Parse(acctokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(a.TokenManager.JWTSecret), nil
		})

		if token != nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if jti, ok := claims["jti"].(string); ok {
					var expireAt time.Time
					if exp, ok := claims["exp"].(float64); ok {
						expireAt = time.Unix(int64(exp), 0)
					} else {
						expireAt = time.Now().Add(time.Duration(a.TokenManager.AccMaxAge) * time.Second)
					}

					a.DB.Create(&models.Blacklist{
						Jti:       jti,
						ExpiresAt: expireAt,
					})
				}
			}
		}
	}

	a.TokenManager.SetClearCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
