package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"extend-xmlrpc/config"
	"extend-xmlrpc/db"
	"extend-xmlrpc/internal/logger"
	"extend-xmlrpc/repositories"
	"extend-xmlrpc/services"
)

// MCP 서버는 stdout 으로 프로토콜을 주고받으므로 로그는 stderr 로만 남긴다.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitWriter(cfg.Logging.Level, os.Stderr)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mongo init failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	host, err := services.NewSiteHost(
		repositories.NewPostRepository(db.Database()),
		repositories.NewTermRepository(db.Database()),
		repositories.NewUserRepository(db.Database()),
		services.SiteOptionsFromConfig(cfg),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "site host: %v\n", err)
		os.Exit(1)
	}

	handlers, err := services.NewHandlers(cfg.XMLRPC, host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xmlrpc methods: %v\n", err)
		os.Exit(1)
	}
	methods := make(map[string]PostsMethod, len(handlers))
	for _, h := range handlers {
		methods[h.Method()] = h
	}

	s := server.NewMCPServer(
		"extend-xmlrpc-mcp-server",
		"1.0.0",
	)
	tool := newGetPostsTool(methods)
	s.AddTool(tool.definition(), tool.handle)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
