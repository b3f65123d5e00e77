package middleware

import (
	"net/http"
	"strings"

	"laborlink/models"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's id
// and role in the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, roleClaim, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Invalid token")
			return
		}
		role, ok := models.ParseRole(roleClaim)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Invalid token role")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// CurrentIdentity returns what JWTAuthMiddleware stored.
func CurrentIdentity(c *gin.Context) (string, models.Role) {
	userID := c.GetString(ContextUserID)
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.Role)
	return userID, r
}
