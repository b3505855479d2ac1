package user

import (
	"errors"
	"net/http"

	"hirehub/job-portal-api/internal"
	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyEmail consumes a verification token. The token has to verify
// cryptographically AND equal the value stored on the record, so a
// consumed or superseded token is rejected even though its signature
// is still good
func VerifyEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Verification token is missing",
			"success":   false,
			"requestID": requestID,
		})
		return
	}

	claims, err := d.Tokens.Verify(token, security.PurposeVerify)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid or expired verification token",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Debug("Verification token rejected", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	err = d.DB.
		Where("email = ? AND verification_token = ?", claims.Email, token).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Invalid or expired verification token",
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

		zap.L().Error("Failed to look up verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&user).Updates(map[string]any{
		"is_verified":        true,
		"verification_token": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"success":   false,
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark user as verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email verified successfully",
		"success":   true,
		"requestID": requestID,
	})
}
