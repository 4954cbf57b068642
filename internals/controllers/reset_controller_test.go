package controllers

import (
	"net/http"
	"testing"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/passwordreset"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResetRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeDispatcher) {
	t.Helper()
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	ctrl := NewResetController(passwordreset.NewService(db, dispatcher))

	r := gin.New()
	r.POST("/forgot-password", ctrl.ForgotPassword)
	r.GET("/reset-password/verify", ctrl.VerifyResetToken)
	r.POST("/reset-password", ctrl.ResetPassword)
	return r, db, dispatcher
}

func seedResetUser(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	hash, err := auth.HashPassword("oldpassword1")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Email: email, Username: email, Password: hash}).Error)
}

// The forgot-password endpoint must not reveal whether an account exists:
// a known and an unknown email get byte-identical responses.
func TestForgotPasswordIndistinguishable(t *testing.T) {
	r, db, _ := newResetRouter(t)
	seedResetUser(t, db, "known@example.com")

	known := postJSON(t, r, "/forgot-password", gin.H{"email": "known@example.com"})
	unknown := postJSON(t, r, "/forgot-password", gin.H{"email": "unknown@example.com"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
	assert.Contains(t, known.Body.String(), ResetRequestMessage)
}

func TestForgotPasswordInvalidEmail(t *testing.T) {
	r, _, _ := newResetRouter(t)

	w := postJSON(t, r, "/forgot-password", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordEndToEnd(t *testing.T) {
	r, db, dispatcher := newResetRouter(t)
	seedResetUser(t, db, "ada@example.com")

	w := postJSON(t, r, "/forgot-password", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	mails := dispatcher.byTemplate(notify.TemplatePasswordReset)
	require.Len(t, mails, 1)
	token := mails[0].data["token"]
	require.NotEmpty(t, token)

	w = getPath(t, r, "/reset-password/verify?token="+token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "ada@example.com", body["email"])

	// Policy violations are caught before the token is spent.
	w = postJSON(t, r, "/reset-password", gin.H{"token": token, "new_password": "weak"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/reset-password", gin.H{"token": token, "new_password": "newpassword1"})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.True(t, auth.VerifyPassword("newpassword1", user.Password))

	// Single use: the same link fails the second time.
	w = postJSON(t, r, "/reset-password", gin.H{"token": token, "new_password": "another99"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyResetTokenInvalid(t *testing.T) {
	r, _, _ := newResetRouter(t)

	w := getPath(t, r, "/reset-password/verify?token=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getPath(t, r, "/reset-password/verify")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
