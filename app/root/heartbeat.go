package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs after the session guard, reaching it at all
// means the token is good
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
