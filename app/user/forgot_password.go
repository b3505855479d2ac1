package user

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/internal/service"
	"hirehub/job-portal-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// ForgotPassword stores a 1h reset token on the record along with an
// independent expiry timestamp and mails the reset link. The stored
// expiry is checked again on reset, so a leaked token can't outlive it
func ForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Email is required",
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
				"message":   "User not found",
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

	resetToken, err := d.Tokens.Reset(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiresAt := time.Now().Add(security.ResetTTL)

	err = d.DB.Model(&user).Updates(map[string]any{
		"reset_password_token":   resetToken,
		"reset_password_expires": expiresAt,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := service.SendPasswordResetMail(d.Mailer, user.Email, resetToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to send password reset email",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to send password reset email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Password reset link sent to your email",
		"success":   true,
		"requestID": requestID,
	})
}
