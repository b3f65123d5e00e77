package middleware

import (
	"net/http"

	"laborlink/models"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose token role is not one of allowed.
// It must run after JWTAuthMiddleware.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role := CurrentIdentity(c)
		if userID == "" {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Unauthorized")
			return
		}
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, utils.KindForbidden, "This action is not available to your role")
	}
}
