package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenManager issues the access/refresh token pair for logged-in users.
// The access token is a short-lived JWT carrying a JTI (so logout can
// blacklist it); the refresh token is backed by a session row and rotated
// on every refresh.
type TokenManager struct {
	DB           *gorm.DB
	CookieConfig *config.CookieConfig
	// JWTSecret signs both tokens
	JWTSecret string
	// AccMaxAge / RefMaxAge are expiration times in seconds
	AccMaxAge int
	RefMaxAge int
	// AccPath / RefPath scope the respective cookies
	AccPath string
	RefPath string
}

func NewTokenManager(db *gorm.DB, cookieConfig *config.CookieConfig, jwtSecret string, accMaxAge, refMaxAge int, accPath, refPath string) *TokenManager {
	return &TokenManager{
		DB:           db,
		CookieConfig: cookieConfig,
		JWTSecret:    jwtSecret,
		AccMaxAge:    accMaxAge,
		RefMaxAge:    refMaxAge,
		AccPath:      accPath,
		RefPath:      refPath,
	}
}

// TokenMetadata holds the results of token generation.
type TokenMetadata struct {
	AccessToken  string
	RefreshToken string
}

// SetClearCookies removes both auth cookies from the client.
func (tm *TokenManager) SetClearCookies(c *gin.Context) {
	c.SetCookie("Authorization", "", -1, tm.AccPath, tm.CookieConfig.Domain, tm.CookieConfig.IsSecure, tm.CookieConfig.HttpOnly)
	c.SetCookie("RefreshToken", "", -1, tm.RefPath, tm.CookieConfig.Domain, tm.CookieConfig.IsSecure, tm.CookieConfig.HttpOnly)
}

func (tm *TokenManager) createAccessToken(userID uint, expAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.New().String(),
		"exp": expAt.Unix(),
	})
	return token.SignedString([]byte(tm.JWTSecret))
}

func (tm *TokenManager) createRefreshToken(userID uint, expAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": expAt.Unix(),
	})
	return token.SignedString([]byte(tm.JWTSecret))
}

// GenerateAndSetToken creates both tokens, stores the refresh session, and
// sets the cookies. If the session insert fails the cookies are cleared so
// the client is never left in a half-valid state.
func (tm *TokenManager) GenerateAndSetToken(c *gin.Context, userID uint) (*TokenMetadata, error) {
	accExpiresAt := time.Now().Add(time.Duration(tm.AccMaxAge) * time.Second)
	refExpiresAt := time.Now().Add(time.Duration(tm.RefMaxAge) * time.Second)

	accTokenStr, err := tm.createAccessToken(userID, accExpiresAt)
	if err != nil {
		tm.SetClearCookies(c)
		return nil, fmt.Errorf("access token generation failed: %w", err)
	}
	refTokenStr, err := tm.createRefreshToken(userID, refExpiresAt)
	if err != nil {
		tm.SetClearCookies(c)
		return nil, fmt.Errorf("refresh token generation failed: %w", err)
	}

	session := models.Session{
		UserID:       userID,
		RefreshToken: refTokenStr,
		UserAgent:    c.Request.UserAgent(),
		IPAddress:    c.ClientIP(),
		ExpiresAt:    refExpiresAt,
	}
	if err := tm.DB.Create(&session).Error; err != nil {
		tm.SetClearCookies(c)
		return nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("Authorization", accTokenStr, tm.AccMaxAge, tm.AccPath, tm.CookieConfig.Domain, tm.CookieConfig.IsSecure, tm.CookieConfig.HttpOnly)
	c.SetCookie("RefreshToken", refTokenStr, tm.RefMaxAge, tm.RefPath, tm.CookieConfig.Domain, tm.CookieConfig.IsSecure, tm.CookieConfig.HttpOnly)

	return &TokenMetadata{AccessToken: accTokenStr, RefreshToken: refTokenStr}, nil
}
