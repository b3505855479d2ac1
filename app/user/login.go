package user

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

const sessionCookieMaxAge = 60 * 60 * 24

// Login checks credentials and role and issues the session cookie.
// Unknown emails and wrong passwords return the same message so the
// endpoint can't be used to probe which emails are registered
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" || data.Password == "" || data.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "All fields (email, password, role) are required",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := d.DB.Where("email = ?", strings.ToLower(data.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Incorrect email or password",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{
			"message":   "Please verify your email before logging in",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	ok, err := security.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Incorrect email or password",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	if data.Role != user.Role {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Account doesn't exist with current role",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	sessionToken, err := d.Tokens.Session(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", sessionToken, sessionCookieMaxAge, "/", "", viper.GetBool("host.ssl.enabled"), true)

	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Welcome back %s", user.FullName),
		"user":      sanitize(&user),
		"success":   true,
		"requestID": requestID,
	})
}
