package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "intent-router/internal/chat/delivery/http"
	chatTelegram "intent-router/internal/chat/delivery/telegram"
	intentHTTP "intent-router/internal/intent/delivery/http"
	"intent-router/internal/model"
)

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery(), srv.mw.TraceID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	intentHTTP.RegisterRoutes(api.Group("/intents"), intentHTTP.New(srv.l, srv.router), srv.mw)
	srv.l.Infof(ctx, "Intent routes registered under /api/v1/intents")

	if srv.chat != nil {
		chatHTTP.RegisterRoutes(api.Group("/chat"), chatHTTP.New(srv.l, srv.chat), srv.mw)
		srv.l.Infof(ctx, "Chat routes registered under /api/v1/chat")
	} else {
		srv.l.Infof(ctx, "Chat not configured, skipping chat routes")
	}

	if srv.telegramHandler != nil {
		chatTelegram.RegisterRoutes(srv.gin, srv.telegramHandler, srv.mw)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}
}
