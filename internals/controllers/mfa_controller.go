package controllers

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"
)

// MFAController manages TOTP second factors. Intended for admin accounts —
// the accounts that can approve access are the ones worth hardening.
type MFAController struct {
	DB           *gorm.DB
	TokenManager *auth.TokenManager
	// AppName is the TOTP issuer shown in authenticator apps
	AppName       string
	EncryptionKey string
}

func NewMFAController(db *gorm.DB, tokenManager *auth.TokenManager, appName string, encryptionKey string) *MFAController {
	return &MFAController{
		DB:            db,
		TokenManager:  tokenManager,
		AppName:       appName,
		EncryptionKey: encryptionKey,
	}
}

// Setup generates a TOTP secret for the logged-in user and returns it with a
// QR code. The secret is stored encrypted; 2FA stays off until Activate
// proves the authenticator works.
func (m *MFAController) Setup(c *gin.Context) {
	value, _ := c.Get("user")
	user := value.(models.User)

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.AppName,
		AccountName: user.Email,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate 2FA key"})
		return
	}

	encryptedSecret, err := auth.Encrypt(key.Secret(), m.EncryptionKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encrypt 2FA secret"})
		return
	}

	m.DB.Model(&user).Update("TwoFASecret", encryptedSecret)

	img, _ := key.Image(200, 200)
	var buf bytes.Buffer
	png.Encode(&buf, img)
	imgBase64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	c.JSON(http.StatusOK, gin.H{
		"secret":      key.Secret(),
		"qr_code_url": "data:image/png;base64," + imgBase64,
	})
}

// Activate turns 2FA on after the user proves they can produce a valid code.
func (m *MFAController) Activate(c *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	value, _ := c.Get("user")
	user := value.(models.User)

	decryptedSecret, err := auth.Decrypt(user.TwoFASecret, m.EncryptionKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrypt 2FA secret"})
		return
	}

	if !auth.ValidateTOTP(body.Code, decryptedSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		return
	}

	m.DB.Model(&user).Update("TwoFAEnabled", true)
	c.JSON(http.StatusOK, gin.H{"message": "2FA activated successfully"})
}

// LoginVerify completes a login that Login deferred with mfa_required.
func (m *MFAController) LoginVerify(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
		return
	}

	var user models.User
	if err := m.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or code"})
		return
	}

	if !user.TwoFAEnabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "2FA is not enabled for this account"})
		return
	}

	decryptedSecret, err := auth.Decrypt(user.TwoFASecret, m.EncryptionKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process security key"})
		return
	}

	if !auth.ValidateTOTP(body.Code, decryptedSecret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		return
	}

	tokenMetadata, err := m.TokenManager.GenerateAndSetToken(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully", "access_token": tokenMetadata.AccessToken, "refresh_token": tokenMetadata.RefreshToken})
}
