package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"extend-xmlrpc/internal/logger"
	"extend-xmlrpc/internal/trace"
)

const (
	HeaderRequestID = "X-Request-Id"

	// ContextKeyMethod 는 XML-RPC 핸들러가 호출된 메서드명을 남기는 gin 컨텍스트 키다.
	ContextKeyMethod = "xmlrpc_method"
	// ContextKeyFault 는 fault 응답일 때 fault code 를 남기는 키다.
	ContextKeyFault = "xmlrpc_fault"
)

const maxBodyLog = 1024

type bodyReader struct {
	io.Reader
	io.Closer
}

// maskCredentials 는 methodCall 의 두 번째, 세 번째 param(username, password) 값을 가린다.
// 잘린 스니펫에서 닫히지 않은 param 도 끝까지 가린다.
func maskCredentials(body string) string {
	const open, end = "<param>", "</param>"
	var b strings.Builder
	rest := body
	for i := 0; ; i++ {
		start := strings.Index(rest, open)
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		start += len(open)
		b.WriteString(rest[:start])
		rest = rest[start:]

		stop := strings.Index(rest, end)
		if stop < 0 {
			stop = len(rest)
		}
		if i == 1 || i == 2 {
			b.WriteString("<value>***</value>")
		} else {
			b.WriteString(rest[:stop])
		}
		rest = rest[stop:]
	}
}

// RequestTrace는 모든 inbound HTTP 요청에 대해 Request ID를 보장하고,
// 이를 컨텍스트/헤더에 저장한 뒤 요청 완료 로그에 포함시킨다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}
		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		req = c.Request
		c.Writer.Header().Set(HeaderRequestID, requestID)

		// 요청 바디 앞부분만 읽어 로깅한다. 계정 파라미터는 가린 뒤 debug 레벨에서만 남긴다.
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 && req.Method == http.MethodPost {
			head, err := io.ReadAll(io.LimitReader(req.Body, maxBodyLog))
			if err == nil {
				bodySnippet = maskCredentials(string(head))
			}
			// 핸들러가 처음부터 읽을 수 있도록 읽은 앞부분과 남은 스트림을 이어 붙인다.
			c.Request.Body = bodyReader{io.MultiReader(bytes.NewReader(head), req.Body), req.Body}
		}

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		}
		if m, ok := c.Get(ContextKeyMethod); ok {
			fields["method_name"] = m
		}
		if code, ok := c.Get(ContextKeyFault); ok {
			fields["fault_code"] = code
		}
		logger.InfoWithFields("completed request", fields)
		if bodySnippet != "" {
			logger.DebugWithFields("request body", logger.Fields{"request_id": requestID, "body": bodySnippet})
		}
	}
}
