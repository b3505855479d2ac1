package service

import (
	"time"

	"hirehub/job-portal-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup defines a function used to periodically clear expired
// reset tokens from user records. The reset flow checks the stored
// expiry anyway, this just keeps dead tokens from lingering
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			r := db.
				Model(model.User{}).
				Where("reset_password_expires < ?", time.Now()).
				Updates(map[string]any{
					"reset_password_token":   nil,
					"reset_password_expires": nil,
				})
			if r.Error != nil {
				zap.L().Error("Failed to clear expired reset tokens", zap.Error(r.Error))
				continue
			}

			if r.RowsAffected > 0 {
				zap.L().Debug("Cleared expired reset tokens", zap.Int64("count", r.RowsAffected))
			}
		}
	}()
}
