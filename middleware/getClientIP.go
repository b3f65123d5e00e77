package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// clientKey identifies the caller for rate limiting: the first
// X-Forwarded-For hop, then X-Real-IP, then gin's remote address.
func clientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	return c.ClientIP()
}
