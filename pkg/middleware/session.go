package middleware

import (
	"net/http"

	"hirehub/job-portal-api/internal/model"
	"hirehub/job-portal-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewSessionGuard gates protected routes behind the session cookie.
// It validates the token, checks the account still exists and attaches
// the user ID to the request context as userID
func NewSessionGuard(d *gorm.DB, tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "User not authenticated",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		claims, err := tokens.Verify(tokenStr, security.PurposeSession)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Invalid token",
				"success":   false,
				"requestID": requestID,
			})

			zap.L().Debug("Session token rejected", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// The token may outlive the account it was issued for
		var count int64
		err = d.Model(model.User{}).Where("id = ?", claims.UserID).Count(&count).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"success":   false,
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Invalid token",
				"success":   false,
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
