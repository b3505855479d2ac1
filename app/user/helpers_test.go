package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/middleware"
	"hirehub/job-portal-api/pkg/security"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type stubMailer struct {
	Sent []sentMail
	Fail bool
}

func (s *stubMailer) Send(to, subject, html string) error {
	if s.Fail {
		return errors.New("smtp unavailable")
	}

	s.Sent = append(s.Sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func newTestDeps(t *testing.T) (*internal.Deps, *stubMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("security.bcrypt_cost", 10)
	viper.Set("host.frontend_url", "http://localhost:5173")
	viper.Set("host.ssl.enabled", false)
	viper.Set("turnstile.enabled", false)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}))

	m := &stubMailer{}

	return &internal.Deps{
		DB:     db,
		Tokens: security.NewTokenService([]byte("test-secret")),
		Mailer: m,
	}, m
}

func newTestRouter(d *internal.Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	session := middleware.NewSessionGuard(d.DB, d.Tokens)

	r.POST("/register", func(c *gin.Context) { Register(c, d) })
	r.POST("/login", func(c *gin.Context) { Login(c, d) })
	r.GET("/logout", session, func(c *gin.Context) { Logout(c, d) })
	r.GET("/verify-email", func(c *gin.Context) { VerifyEmail(c, d) })
	r.POST("/resend-verification", func(c *gin.Context) { ResendVerification(c, d) })
	r.POST("/forgot-password", func(c *gin.Context) { ForgotPassword(c, d) })
	r.POST("/reset-password", func(c *gin.Context) { ResetPassword(c, d) })
	r.POST("/profile/update", session, func(c *gin.Context) { ProfileUpdate(c, d) })
	r.GET("/me", session, func(c *gin.Context) { Fetch(c, d) })

	return r
}

func doForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerForm(email string) url.Values {
	return url.Values{
		"fullname":    {"Jane Doe"},
		"email":       {email},
		"phoneNumber": {"5551234567"},
		"password":    {"Secret123!"},
		"role":        {model.RoleStudent},
	}
}

// seedUser inserts a user directly, bypassing the register endpoint
func seedUser(t *testing.T, d *internal.Deps, email, password, role string, verified bool) *model.User {
	t.Helper()

	id, err := gonanoid.New(16)
	require.NoError(t, err)

	hash, err := security.HashPassword(password, 10)
	require.NoError(t, err)

	u := &model.User{
		ID:           id,
		FullName:     "Jane Doe",
		Email:        email,
		PhoneNumber:  "5551234567",
		PasswordHash: hash,
		Role:         role,
		IsVerified:   verified,
	}

	require.NoError(t, d.DB.Create(u).Error)
	return u
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}
