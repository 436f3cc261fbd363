package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ParseModeMarkdown = "Markdown"
	ActionTyping      = "typing"

	// MaxMessageLength is the Bot API limit for a single sendMessage text.
	MaxMessageLength = 4096
)

// Sender is the part of the Bot used by chat delivery.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is
// echoed back by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	payload := map[string]string{"url": webhookURL}
	if secret != "" {
		payload["secret_token"] = secret
	}
	if err := b.call(ctx, "setWebhook", payload); err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
// Text longer than MaxMessageLength is truncated.
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error {
	if r := []rune(text); len(r) > MaxMessageLength {
		text = string(r[:MaxMessageLength-1]) + "…"
	}
	err := b.call(ctx, "sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

// SendChatAction shows a status such as "typing" in the chat.
func (b *Bot) SendChatAction(ctx context.Context, chatID int64, action string) error {
	err := b.call(ctx, "sendChatAction", map[string]any{"chat_id": chatID, "action": action})
	if err != nil {
		return fmt.Errorf("telegram sendChatAction failed: %w", err)
	}
	return nil
}

func (b *Bot) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("status %d: failed to decode response: %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiResp.Description)
	}
	return nil
}
