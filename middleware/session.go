package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub/constants"
)

const SessionHeader = "X-Session-ID"

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(constants.CtxSessionID, sessionID)
		c.Writer.Header().Set(SessionHeader, sessionID)
		c.Next()
	}
}

// SessionID trả về sessionId của request hiện tại
func SessionID(c *gin.Context) string {
	return c.GetString(constants.CtxSessionID)
}
