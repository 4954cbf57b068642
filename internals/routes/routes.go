package routes

import (
	"time"

	"github.com/ramancoder123/dicideon/internals/auth"
	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/controllers"
	"github.com/ramancoder123/dicideon/internals/locations"
	"github.com/ramancoder123/dicideon/internals/middleware"
	"github.com/ramancoder123/dicideon/internals/notify"
	"github.com/ramancoder123/dicideon/internals/passwordreset"
	"github.com/ramancoder123/dicideon/internals/registration"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, locStore *locations.Store) *gin.Engine {
	r := gin.Default()

	appName := config.GetEnvAsStr("APP_NAME", "Dicideon")
	encryptionKey := config.GetEnv("ENCRYPTION_KEY")
	jwtSecret := config.GetEnv("JWT_SECRET_KEY")

	mailer := notify.NewMailer(&notify.SMTPConfig{
		Host:     config.GetEnvAsStr("SMTP_HOST", "smtp.gmail.com"),
		Port:     config.GetEnvAsInt("SMTP_PORT", 587, true),
		User:     config.GetEnv("SENDER_EMAIL"),
		Password: config.GetEnv("SENDER_PASSWORD"),
		AppName:  appName,
		BaseURL:  config.GetEnvAsStr("BASE_URL", "http://localhost:8080"),
		CodeExp:  10,
		Timeout:  time.Duration(config.GetEnvAsInt("SMTP_TIMEOUT_SECONDS", 10, true)) * time.Second,
	})

	tokenManager := auth.NewTokenManager(
		db,
		&config.CookieConfig{
			Domain:   config.GetEnvAsStr("DOMAIN", ""),
			IsSecure: config.GetEnvAsStr("SECURE_COOKIE", "true") == "true",
			HttpOnly: true, // Always HttpOnly for security
		},
		jwtSecret,
		config.GetEnvAsInt("ACCESS_TOKEN_EXPIRATION_SECONDS", 900, true),
		config.GetEnvAsInt("REFRESH_TOKEN_EXPIRATION_SECONDS", 86400, true),
		config.GetEnvAsStr("ACCESS_TOKEN_PATH", ""),
		config.GetEnvAsStr("REFRESH_TOKEN_PATH", "/auth/refresh"),
	)

	registrationSvc := registration.NewService(db, mailer, config.GetEnv("ADMIN_EMAIL"))
	resetSvc := passwordreset.NewService(db, mailer)

	authMiddleware := middleware.NewRequireAuthMiddleware(db, jwtSecret)
	authCtrl := controllers.NewAuthController(db, tokenManager)
	mfaCtrl := controllers.NewMFAController(db, tokenManager, appName, encryptionKey)
	tokenCtrl := controllers.NewTokenController(db, tokenManager)
	signupCtrl := controllers.NewSignupController(registrationSvc, locStore)
	resetCtrl := controllers.NewResetController(resetSvc)
	adminCtrl := controllers.NewAdminController(registrationSvc)
	locationCtrl := controllers.NewLocationController(locStore)

	public := r.Group("/")
	{
		public.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "active",
				"message": appName + " access API is running",
			})
		})
		public.GET("/locations", locationCtrl.List)
		public.GET("/locations/phone-code", locationCtrl.PhoneCode)

		signup := public.Group("signup")
		{
			signup.POST("/", signupCtrl.Signup)

			otp := signup.Group("/otp")
			{
				otp.POST("/verify", signupCtrl.VerifyOTP)
				otp.POST("/resend", signupCtrl.ResendOTP)
			}
		}

		public.POST("/login", authCtrl.Login)
		public.POST("/2fa/login-verify", mfaCtrl.LoginVerify)

		public.POST("/forgot-password", resetCtrl.ForgotPassword)
		public.GET("/reset-password/verify", resetCtrl.VerifyResetToken)
		public.POST("/reset-password", resetCtrl.ResetPassword)
	}

	protected := r.Group("/")
	protected.Use(authMiddleware.RequireAuth)
	{
		protected.POST("/logout", authCtrl.Logout)
		protected.GET("/validate", tokenCtrl.Validate)

		protected.POST("/2fa/setup", mfaCtrl.Setup)
		protected.POST("/2fa/activate", mfaCtrl.Activate)
	}

	admin := r.Group("/admin")
	admin.Use(authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	{
		admin.GET("/requests", adminCtrl.ListPending)
		admin.POST("/requests/approve", adminCtrl.Approve)
		admin.POST("/requests/reject", adminCtrl.Reject)
		admin.POST("/requests/corrupted", adminCtrl.HandleCorrupted)
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/refresh", tokenCtrl.RefreshToken)
	}

	return r
}
