package controllers

import (
	"net/http"
	"testing"

	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/registration"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSignupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeDispatcher) {
	t.Helper()
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := registration.NewService(db, dispatcher, "admin@dicideon.test")
	ctrl := NewSignupController(svc, newTestLocations(t))
	adminCtrl := NewAdminController(svc)

	r := gin.New()
	r.POST("/signup", ctrl.Signup)
	r.POST("/signup/otp/verify", ctrl.VerifyOTP)
	r.POST("/signup/otp/resend", ctrl.ResendOTP)
	r.GET("/admin/requests", adminCtrl.ListPending)
	r.POST("/admin/requests/approve", adminCtrl.Approve)
	r.POST("/admin/requests/reject", adminCtrl.Reject)
	return r, db, dispatcher
}

func signupBody() gin.H {
	return gin.H{
		"email":             "ada@example.com",
		"user_id":           "ada",
		"first_name":        "Ada",
		"last_name":         "Lovelace",
		"contact_number":    "07911123456",
		"date_of_birth":     "1990-12-10",
		"gender":            "Female",
		"organization_name": "Analytical Engines Ltd",
		"country":           "United Kingdom",
		"state":             "England",
		"city":              "London",
		"password":          "password123",
		"confirm_password":  "password123",
	}
}

func TestSignupThroughApproval(t *testing.T) {
	r, db, dispatcher := newSignupRouter(t)

	w := postJSON(t, r, "/signup", signupBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w), "otp_expires_at")

	otpMails := dispatcher.byTemplate(notify.TemplateSignupOTP)
	require.Len(t, otpMails, 1)
	code := otpMails[0].data["otp"]

	// Wrong code first; no state advances.
	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	w = postJSON(t, r, "/signup/otp/verify", gin.H{"email": "ada@example.com", "code": wrong})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/signup/otp/verify", gin.H{"email": "ada@example.com", "code": code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The admin sees the request, with no password or code in the payload.
	w = getPath(t, r, "/admin/requests")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "otp")

	w = postJSON(t, r, "/admin/requests/approve", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "44", user.PhoneCode)

	// Deciding twice is a conflict, not a second user.
	w = postJSON(t, r, "/admin/requests/approve", gin.H{"email": "ada@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupFieldValidation(t *testing.T) {
	r, _, dispatcher := newSignupRouter(t)

	body := signupBody()
	body["confirm_password"] = "different123"
	body["date_of_birth"] = "10/12/1990"
	body["country"] = "Atlantis"

	w := postJSON(t, r, "/signup", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	errs, ok := resp["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 3)
	assert.Empty(t, dispatcher.sent, "nothing dispatched for a rejected form")
}

func TestSignupConflictReturns409(t *testing.T) {
	r, db, _ := newSignupRouter(t)
	require.NoError(t, db.Create(&models.User{
		Email:    "other@example.com",
		Username: "ada",
		Password: "x",
	}).Error)

	w := postJSON(t, r, "/signup", signupBody())
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User ID")
}

// Resend answers with the same message whether or not a pending signup
// exists, so the endpoint cannot confirm an email is mid-registration.
func TestResendOTPGenericResponse(t *testing.T) {
	r, _, dispatcher := newSignupRouter(t)

	w := postJSON(t, r, "/signup/otp/resend", gin.H{"email": "nobody@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	noPending := decodeBody(t, w)["message"]
	assert.Empty(t, dispatcher.sent)

	w = postJSON(t, r, "/signup", signupBody())
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/signup/otp/resend", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, noPending, decodeBody(t, w)["message"])
	assert.Len(t, dispatcher.byTemplate(notify.TemplateSignupOTP), 2)
}

func TestRejectNotifiesAndBlocksLogin(t *testing.T) {
	r, db, dispatcher := newSignupRouter(t)

	w := postJSON(t, r, "/signup", signupBody())
	require.Equal(t, http.StatusOK, w.Code)
	code := dispatcher.byTemplate(notify.TemplateSignupOTP)[0].data["otp"]

	w = postJSON(t, r, "/signup/otp/verify", gin.H{"email": "ada@example.com", "code": code})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/admin/requests/reject", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, dispatcher.byTemplate(notify.TemplateRejection), 1)

	// No account came out of the rejected request.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
