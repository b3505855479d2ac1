package user

import (
	"errors"
	"net/http"
	"strings"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resendBody struct {
	Email string `json:"email"`
}

// ResendVerification issues a fresh verification token, overwriting
// the previous one, and mails it again
func ResendVerification(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
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

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Email is already verified",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	verifToken, err := d.Tokens.Verification(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&user).Update("verification_token", verifToken).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to store verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := service.SendVerificationMail(d.Mailer, user.Email, verifToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Failed to resend verification email",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to resend verification email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification email resent successfully",
		"success":   true,
		"requestID": requestID,
	})
}
