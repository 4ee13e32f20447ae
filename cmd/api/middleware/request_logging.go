package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"extend-xmlrpc/internal/logger"
)

// RequestLoggingMiddleware 는 요청 진입부터 응답까지 걸린 시간을 한 줄로 로깅한다.
// 구조화 로그가 필요 없는 health 체크 등에 쓴다.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Log.Debugf(
			"api_request method=%s path=%s status=%d duration_ms=%d",
			method,
			path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}
