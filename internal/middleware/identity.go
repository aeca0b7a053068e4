package middleware

import (
	"strings"

	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxUserIDLen = 64

// Identity 从 X-User-ID 头解析调用方身份并写入上下文。
// 认证在网关层完成，这里不校验凭证；没有头部时按匿名用户处理。
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if len(userID) > maxUserIDLen {
			util.BadRequest(c, "X-User-ID too long")
			c.Abort()
			return
		}
		if userID == "" {
			userID = "anonymous"
		}
		c.Set(util.ContextUserIDKey, userID)
		c.Next()
	}
}
