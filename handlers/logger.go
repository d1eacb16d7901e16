package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poppi/middleware"
)

// getLogger retrieves the request-scoped Zap logger from the Gin context.
func getLogger(c *gin.Context) *zap.Logger {
	return middleware.LoggerFrom(c)
}
