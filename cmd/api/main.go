package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"intent-router/config"
	_ "intent-router/docs" // Swagger docs
	"intent-router/internal/app"
	chatTelegram "intent-router/internal/chat/delivery/telegram"
	"intent-router/internal/httpserver"
	"intent-router/internal/middleware"
	"intent-router/internal/model"
	"intent-router/internal/registry"
	"intent-router/pkg/log"
	"intent-router/pkg/metrics"
	"intent-router/pkg/telegram"
)

// @title       Intent Router API
// @description Semantic intent routing over embedded example utterances, with FAQ and catalog answerers.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "intent-router stopped: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting intent-router...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Router and answerers
	m := metrics.New(metrics.DefaultNamespace)
	a, err := app.New(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Router.Init(ctx); err != nil {
		return fmt.Errorf("router init: %w", err)
	}

	// 4. Registry hot reload
	if cfg.Router.WatchRoutes {
		watcher := registry.NewWatcher(cfg.Router.RoutesFile, func(ctx context.Context, routes []model.Route) error {
			_, err := a.Router.UpdateRegistry(ctx, routes)
			return err
		}, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Warnf(ctx, "Registry watcher not started: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	mw := middleware.New(logger, middleware.Config{
		RateLimitPerMin: cfg.RateLimit.PerMin,
		WebhookSecret:   cfg.Telegram.WebhookSecret,
	}, m)

	// 5. Telegram channel
	var telegramHandler chatTelegram.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = chatTelegram.New(logger, a.Chat, bot)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "Telegram skipped: telegram.bot_token is not set")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      mw,
		Metrics:         m,
		Router:          a.Router,
		Chat:            a.Chat,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// 7. Run
	return httpServer.Run(ctx)
}

// registerWebhook points the bot at the configured webhook URL, or at an
// ngrok tunnel when one is running.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPIURL != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.NgrokAPIURL)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook not registered: telegram.webhook_url is not set")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
