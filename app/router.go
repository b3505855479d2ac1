// Package app wires the HTTP router and everything the handlers need
package app

import (
	"fmt"
	"time"

	"hirehub/job-portal-api/app/root"
	"hirehub/job-portal-api/app/user"
	"hirehub/job-portal-api/aws"
	"hirehub/job-portal-api/db"
	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/service"
	"hirehub/job-portal-api/pkg/middleware"
	"hirehub/job-portal-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{
		Tokens: security.NewTokenService([]byte(viper.GetString("jwt.secret"))),
		Mailer: service.NewSMTPMailer(),
	}

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = conn

	if viper.GetBool("storage.enabled") {
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Uploader = service.NewS3Uploader(s3)
	}

	makeLogger()

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	session := middleware.NewSessionGuard(conn, d.Tokens)
	turnstile := middleware.NewTurnstileMiddleware()
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	m := router.Group("/api/v1", rateLimiter)
	{
		// HEAD /api/v1/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/v1/validate			-> Validates a session token
		m.GET("/validate", session, root.Validate)
	}

	u := m.Group("/user", middleware.BodySizeLimiter(maxUploadSize))
	{
		// POST /api/v1/user/register 		-> Registers a new account and mails a verification link
		u.POST("/register", turnstile, func(c *gin.Context) { user.Register(c, d) })

		// POST /api/v1/user/login 		-> Logs in a user and sets the session cookie
		u.POST("/login", func(c *gin.Context) { user.Login(c, d) })

		// GET /api/v1/user/logout		-> Clears the session cookie
		u.GET("/logout", session, func(c *gin.Context) { user.Logout(c, d) })

		// GET /api/v1/user/verify-email	-> Consumes an email verification token
		u.GET("/verify-email", func(c *gin.Context) { user.VerifyEmail(c, d) })

		// POST /api/v1/user/resend-verification -> Issues and mails a fresh verification token
		u.POST("/resend-verification", func(c *gin.Context) { user.ResendVerification(c, d) })

		// POST /api/v1/user/forgot-password	-> Issues and mails a password reset token
		u.POST("/forgot-password", turnstile, func(c *gin.Context) { user.ForgotPassword(c, d) })

		// POST /api/v1/user/reset-password	-> Consumes a reset token and replaces the password
		u.POST("/reset-password", func(c *gin.Context) { user.ResetPassword(c, d) })

		// POST /api/v1/user/profile/update	-> Partially updates the authenticated user's profile
		u.POST("/profile/update", session, func(c *gin.Context) { user.ProfileUpdate(c, d) })

		// GET /api/v1/user/me			-> Returns the authenticated user
		u.GET("/me", session, func(c *gin.Context) { user.Fetch(c, d) })
	}

	// Reset tokens expire after an hour, sweeping daily is plenty
	service.TokenCleanup(time.Hour*24, conn)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
