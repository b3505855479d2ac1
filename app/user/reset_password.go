package user

import (
	"errors"
	"net/http"
	"time"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/security"
	"hirehub/job-portal-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resetPasswordBody struct {
	Password string `json:"password"`
}

// ResetPassword consumes a reset token. Three things have to hold: the
// token verifies, it equals the stored value for the decoded user and
// the stored expiry is still in the future. On success the hash is
// replaced and both reset fields are cleared
func ResetPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil || token == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Token and new password are required",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	claims, err := d.Tokens.Verify(token, security.PurposeReset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid or expired reset token",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Debug("Reset token rejected", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	err = d.DB.
		Where("id = ? AND reset_password_token = ? AND reset_password_expires > ?",
			claims.UserID, token, time.Now()).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Invalid or expired reset token",
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

		zap.L().Error("Failed to look up reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	hash, err := security.HashPassword(data.Password, viper.GetInt("security.bcrypt_cost"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&user).Updates(map[string]any{
		"password_hash":          hash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Password reset successfully",
		"success":   true,
		"requestID": requestID,
	})
}
