package controllers

import (
	"net/http"
	"testing"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	tokenManager := auth.NewTokenManager(
		db,
		&config.CookieConfig{HttpOnly: true},
		"test-secret",
		900, 86400,
		"", "/auth/refresh",
	)
	ctrl := NewAuthController(db, tokenManager)

	r := gin.New()
	r.POST("/login", ctrl.Login)
	return r, db
}

func seedApprovedUser(t *testing.T, db *gorm.DB, twoFA bool) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "ada@example.com",
		Username:     "ada",
		Password:     hash,
		TwoFAEnabled: twoFA,
	}).Error)
}

func TestLoginApprovedUser(t *testing.T) {
	r, db := newAuthRouter(t)
	seedApprovedUser(t, db, false)

	w := postJSON(t, r, "/login", gin.H{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	// The refresh token is backed by a session row.
	var count int64
	require.NoError(t, db.Model(&models.Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, db := newAuthRouter(t)
	seedApprovedUser(t, db, false)

	w := postJSON(t, r, "/login", gin.H{"email": "ada@example.com", "password": "wrongpass1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown accounts get the same answer as a wrong password.
	w2 := postJSON(t, r, "/login", gin.H{"email": "nobody@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w.Body.String(), w2.Body.String())
}

func TestLoginDefersToMFA(t *testing.T) {
	r, db := newAuthRouter(t)
	seedApprovedUser(t, db, true)

	w := postJSON(t, r, "/login", gin.H{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["mfa_required"])
	assert.Nil(t, body["access_token"], "no tokens before the second factor")

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}
