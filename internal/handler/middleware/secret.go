package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sharedSecretHeader = "X-Fulfillment-Secret"

// RequireSharedSecret guards webhook-style endpoints called by the payment
// provider rather than a logged-in operator.
func RequireSharedSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(sharedSecretHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid fulfillment secret",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
