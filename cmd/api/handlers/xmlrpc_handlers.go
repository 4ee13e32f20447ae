package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"extend-xmlrpc/cmd/api/middleware"
	"extend-xmlrpc/xmlrpc"
)

const (
	contentTypeXML = "text/xml; charset=UTF-8"

	// DefaultMaxBodyBytes 는 요청 바디 제한이 설정되지 않았을 때 쓰는 값이다.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// XMLRPCHandler decodes the methodCall body, dispatches it and writes the
// methodResponse. Faults are regular 200 responses.
func XMLRPCHandler(server *xmlrpc.Server, maxBodyBytes int64) gin.HandlerFunc {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.String(http.StatusRequestEntityTooLarge, "XML-RPC request too large.")
				return
			}
			c.String(http.StatusBadRequest, "Could not read request body.")
			return
		}

		res := server.Serve(c.Request.Context(), bytes.NewReader(body))
		if res.Method != "" {
			c.Set(middleware.ContextKeyMethod, res.Method)
		}
		if res.Fault != nil {
			c.Set(middleware.ContextKeyFault, res.Fault.Code)
		}
		c.Data(http.StatusOK, contentTypeXML, res.Body)
	}
}

// MethodNotAllowedHandler answers anything but POST on the XML-RPC endpoint.
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", http.MethodPost)
		c.String(http.StatusMethodNotAllowed, "XML-RPC server accepts POST requests only.")
	}
}

// HealthHandler reports whether the post store is reachable.
func HealthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ListMethodsHandler exposes the registered method names as JSON for operators.
func ListMethodsHandler(server *xmlrpc.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"methods": server.MethodNames()})
	}
}
