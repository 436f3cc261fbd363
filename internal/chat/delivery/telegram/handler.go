package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"intent-router/internal/chat"
	"intent-router/internal/model"
	pkgLog "intent-router/pkg/log"
	pkgResponse "intent-router/pkg/response"
	pkgTelegram "intent-router/pkg/telegram"
)

const (
	msgStart = "👋 Welcome to the store assistant!\n\nAsk me about orders, returns and payments, or search the catalog, e.g. _\"Show me products under 1000\"_."
	msgHelp  = "*How to use:*\n\nJust type your question.\n• Policies and orders: `How can I track my order?`\n• Catalog: `Which items are discounted?`\n\n/routes lists what I can answer."
)

// HandleWebhook acknowledges the update immediately and replies from a
// background goroutine; the answer pipeline can take longer than Telegram
// waits for a webhook response.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	traceID := pkgLog.TraceID(ctx)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		bgCtx, cancel := context.WithTimeout(pkgLog.WithTraceID(context.Background(), traceID), replyTimeout)
		defer cancel()

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, chat.MessageError)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Wait() {
	h.wg.Wait()
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	switch command(text) {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, chatID, msgStart, pkgTelegram.ParseModeMarkdown)
	case "/help":
		return h.bot.SendMessageWithMode(ctx, chatID, msgHelp, pkgTelegram.ParseModeMarkdown)
	case "/routes":
		return h.bot.SendMessage(ctx, chatID, "I can answer: "+strings.Join(h.uc.Routes(), ", "))
	}

	sc := model.Scope{Channel: "telegram"}
	if msg.From != nil {
		sc.UserID = fmt.Sprintf("telegram_%d", msg.From.ID)
		sc.Username = msg.From.Username
	}

	if err := h.bot.SendChatAction(ctx, chatID, pkgTelegram.ActionTyping); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send chat action: %v", err)
	}

	out, err := h.uc.Reply(ctx, sc, text)
	if err != nil {
		return fmt.Errorf("uc.Reply: %w", err)
	}
	return h.bot.SendMessage(ctx, chatID, out.Answer)
}

// command returns the bot command of text without a "@botname" suffix, or ""
// when text is not a command.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}
