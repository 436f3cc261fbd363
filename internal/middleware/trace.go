package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/response"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderWebhookSecret = "X-Telegram-Bot-Api-Secret-Token"
)

// TraceID attaches the caller's X-Request-ID, or a fresh id, to the request
// context and echoes it back.
func (mw Middleware) TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := pkgLog.WithTraceID(c.Request.Context(), c.GetHeader(HeaderRequestID))
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, pkgLog.TraceID(ctx))
		c.Next()
	}
}

// WebhookSecret rejects webhook calls that do not carry the configured secret.
func (mw Middleware) WebhookSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.webhookSecret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(HeaderWebhookSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(mw.webhookSecret)) != 1 {
			mw.l.Warnf(c.Request.Context(), "middleware.WebhookSecret: invalid secret from %s", c.ClientIP())
			c.AbortWithStatusJSON(401, response.Resp{ErrorCode: 401, Message: "Unauthorized"})
			return
		}
		c.Next()
	}
}
