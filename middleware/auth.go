package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 管理类接口（删房间等）的口令校验：
// 请求头 Authorization 必须等于环境变量 ADMIN_TOKEN，未配置口令时一律拒绝
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" || token != os.Getenv("ADMIN_TOKEN") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			c.Abort()
			return
		}
		c.Next()
	}
}
