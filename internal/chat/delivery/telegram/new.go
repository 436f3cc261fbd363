package telegram

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"intent-router/internal/chat"
	pkgLog "intent-router/pkg/log"
	pkgTelegram "intent-router/pkg/telegram"
)

// replyTimeout bounds the background processing of one update.
const replyTimeout = 60 * time.Second

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Wait blocks until every in-flight update has been answered.
	Wait()
}

type handler struct {
	l   pkgLog.Logger
	uc  chat.UseCase
	bot pkgTelegram.Sender
	wg  sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase, bot pkgTelegram.Sender) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
	}
}
