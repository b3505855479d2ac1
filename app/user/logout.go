package user

import (
	"net/http"

	"hirehub/job-portal-api/internal"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Logout clears the session cookie. Session tokens aren't revocable
// server-side, they simply age out at their natural expiry
func Logout(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Logged out successfully",
		"success":   true,
		"requestID": requestID,
	})
}
