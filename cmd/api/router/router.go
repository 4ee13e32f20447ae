package router

import (
	"context"

	"github.com/gin-gonic/gin"

	"extend-xmlrpc/cmd/api/handlers"
	"extend-xmlrpc/cmd/api/middleware"
	"extend-xmlrpc/xmlrpc"
)

// Deps 는 라우터가 필요로 하는 의존성 묶음이다.
type Deps struct {
	Server       *xmlrpc.Server
	Ping         func(ctx context.Context) error
	MaxBodyBytes int64
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", middleware.RequestLoggingMiddleware(), handlers.HealthHandler(deps.Ping))

	rpc := r.Group("/", middleware.RequestTrace())
	{
		serve := handlers.XMLRPCHandler(deps.Server, deps.MaxBodyBytes)
		notAllowed := handlers.MethodNotAllowedHandler()
		for _, path := range []string{"/xmlrpc.php", "/xmlrpc"} {
			rpc.POST(path, serve)
			rpc.GET(path, notAllowed)
		}
		rpc.GET("/methods", handlers.ListMethodsHandler(deps.Server))
	}

	return r
}
