package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intent-router/internal/chat"
	chatTelegram "intent-router/internal/chat/delivery/telegram"
	"intent-router/internal/intent"
	"intent-router/internal/middleware"
	"intent-router/pkg/log"
	"intent-router/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware
	metrics     *metrics.Metrics

	// Domains
	router          intent.UseCase
	chat            chat.UseCase
	telegramHandler chatTelegram.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware
	Metrics     *metrics.Metrics

	// Router is required. Chat and TelegramHandler are optional.
	Router          intent.UseCase
	Chat            chat.UseCase
	TelegramHandler chatTelegram.Handler
}

// New creates a new HTTPServer instance and maps its routes.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              cfg.Middleware,
		metrics:         cfg.Metrics,
		router:          cfg.Router,
		chat:            cfg.Chat,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.router == nil {
		return errors.New("router is required")
	}
	return nil
}
