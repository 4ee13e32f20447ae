package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"extend-xmlrpc/cmd/api/router"
	"extend-xmlrpc/config"
	"extend-xmlrpc/db"
	"extend-xmlrpc/internal/logger"
	"extend-xmlrpc/repositories"
	"extend-xmlrpc/services"
	"extend-xmlrpc/xmlrpc"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		log.Fatal(err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(closeCtx)
	}()

	host, err := services.NewSiteHost(
		repositories.NewPostRepository(db.Database()),
		repositories.NewTermRepository(db.Database()),
		repositories.NewUserRepository(db.Database()),
		services.SiteOptionsFromConfig(cfg),
	)
	if err != nil {
		log.Fatal(err)
	}

	filters, err := services.MethodFilters(cfg.XMLRPC, host)
	if err != nil {
		log.Fatal(err)
	}
	server := xmlrpc.NewServer(filters...)
	logger.Log.Infof("xmlrpc methods registered: %v", server.MethodNames())

	r := router.New(router.Deps{
		Server:       server,
		Ping:         db.Ping,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("xmlrpc server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down xmlrpc server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
}
