package util

import "github.com/gin-gonic/gin"

// ContextUserIDKey 身份中间件写入 gin 上下文的键
const ContextUserIDKey = "userID"

// UserIDFromContext 读取当前请求的用户标识，身份中间件保证非空
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
