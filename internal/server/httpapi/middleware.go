package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/mpetrov/taskkeeper/internal/logging"
	"github.com/mpetrov/taskkeeper/internal/server/auth"
)

const userIDKey = "userID"

// authMiddleware validates the bearer token and stores the user id in the
// request context for the handlers.
func authMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Message: "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Message: "invalid authorization header"})
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], jwtSecret)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Message: common.ErrUnauthorized.Error()})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// requestLogger logs HTTP request/response metadata.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		)
	}
}
