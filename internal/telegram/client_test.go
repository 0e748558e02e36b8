package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendMessage(t *testing.T) {
	var got struct {
		ChatID    int64  `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/bottest-token/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(Config{BotToken: "test-token", APIBase: srv.URL, Timeout: time.Second})
	if err := c.SendMessage(context.Background(), 12345, "код: *123456*"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if got.ChatID != 12345 {
		t.Fatalf("expected chat_id 12345, got %d", got.ChatID)
	}
	if got.Text != "код: *123456*" {
		t.Fatalf("unexpected text %q", got.Text)
	}
	if got.ParseMode != "Markdown" {
		t.Fatalf("expected Markdown parse mode, got %q", got.ParseMode)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "Bad Request: chat not found"})
	}))
	defer srv.Close()

	c := NewClient(Config{BotToken: "test-token", APIBase: srv.URL, Timeout: time.Second})
	err := c.SendMessage(context.Background(), 404, "hello")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected API description in error, got %v", err)
	}
}

func TestSendMessageDisabled(t *testing.T) {
	c := NewClient(Config{Timeout: time.Second})
	if c.Enabled() {
		t.Fatalf("expected client without token to be disabled")
	}
	if err := c.SendMessage(context.Background(), 1, "hi"); err == nil {
		t.Fatalf("expected error from disabled client")
	}
}
