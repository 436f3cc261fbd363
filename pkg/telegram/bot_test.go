package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"intent-router/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastText, lastSecret, lastAction string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasSuffix(path, "/setWebhook") {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			lastSecret = req["secret_token"]
			if req["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			if req["url"] == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))
			return
		}

		if strings.HasSuffix(path, "/sendMessage") {
			var req telegram.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			lastText = req.Text

			if req.Text == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			if req.Text == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/sendChatAction") {
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req)
			lastAction, _ = req["action"].(string)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)
	ctx := context.Background()

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastSecret != "s3cret" {
			t.Errorf("secret_token = %q", lastSecret)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error", "")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected API error, got %v", err)
		}
	})

	t.Run("SetWebhook HTTP Failed", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "cause_500", ""); err == nil {
			t.Fatal("expected error from 500 response")
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessageWithMode Success", func(t *testing.T) {
		if err := bot.SendMessageWithMode(ctx, 123, "*bold*", telegram.ParseModeMarkdown); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessage truncates long text", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, strings.Repeat("a", telegram.MaxMessageLength+10)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := utf8.RuneCountInString(lastText); n != telegram.MaxMessageLength {
			t.Errorf("sent %d runes, want %d", n, telegram.MaxMessageLength)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, "cause_error"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("SendMessage HTTP Failed", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, "cause_500"); err == nil {
			t.Fatal("expected error from 500 response")
		}
	})

	t.Run("SendChatAction", func(t *testing.T) {
		if err := bot.SendChatAction(ctx, 123, telegram.ActionTyping); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastAction != telegram.ActionTyping {
			t.Errorf("action = %q", lastAction)
		}
	})

	t.Run("Invalid API URL", func(t *testing.T) {
		broken := telegram.NewBot("x")
		broken.SetAPIURL("http://%zz")
		if err := broken.SendMessage(ctx, 1, "hi"); err == nil {
			t.Fatal("expected error")
		}
	})
}
