package handlers

import (
	"laborlink/middleware"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger set by middleware.RequestLogger,
// tagged with the caller's identity when the route is authenticated.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, ok := c.Get(middleware.ContextLogger); ok {
		if rl, ok := l.(*zap.Logger); ok {
			logger = rl
		}
	}
	if userID, role := middleware.CurrentIdentity(c); userID != "" {
		logger = logger.With(zap.String("userId", userID), zap.String("role", string(role)))
	}
	return logger
}
