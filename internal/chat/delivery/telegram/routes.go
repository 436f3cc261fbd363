package telegram

import (
	"github.com/gin-gonic/gin"

	"intent-router/internal/middleware"
)

// RegisterRoutes maps the Telegram webhook. Updates must carry the configured
// secret token.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	r.POST("/webhook/telegram", mw.WebhookSecret(), h.HandleWebhook)
}
