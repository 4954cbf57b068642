package middleware

import (
	"net/http"
	"time"

	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type RequireAuthMiddleware struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewRequireAuthMiddleware(db *gorm.DB, jwtSecret string) *RequireAuthMiddleware {
	return &RequireAuthMiddleware{
		DB:        db,
		JWTSecret: jwtSecret,
	}
}

// RequireAuth validates the access token cookie, rejects blacklisted or
// expired tokens, and stores the authenticated user in the context.
func (m *RequireAuthMiddleware) RequireAuth(c *gin.Context) {
	tokenString, err := c.Cookie("Authorization")
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, _ := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.JWTSecret), nil
	})
	if token == nil || !token.Valid {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	// Tokens revoked by logout sit in the blacklist until their natural expiry
	var blacklisted models.Blacklist
	m.DB.Where("jti = ?", jti).First(&blacklisted)
	if blacklisted.ID != 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid (logged out)"})
		return
	}

	exp, ok := claims["exp"].(float64)
	if !ok || float64(time.Now().Unix()) > exp {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var user models.User
	m.DB.First(&user, claims["sub"])
	if user.ID == 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("user", user)
	c.Next()
}

// RequireAdmin gates the admin dashboard routes. Must run after RequireAuth.
func (m *RequireAuthMiddleware) RequireAdmin(c *gin.Context) {
	value, exists := c.Get("user")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, ok := value.(models.User)
	if !ok || !user.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
		return
	}

	c.Next()
}
