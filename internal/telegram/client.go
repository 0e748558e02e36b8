// Package telegram provides a minimal Bot API client; the portal only ever
// sends messages with it.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds Bot API credentials. An empty token disables the client.
type Config struct {
	BotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	APIBase  string        `env:"TELEGRAM_API_BASE" envDefault:"https://api.telegram.org"`
	Timeout  time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	return env.ParseAs[Config]()
}

// Client is a Telegram Bot API client.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether a bot token is configured.
func (c *Client) Enabled() bool { return c.cfg.BotToken != "" }

// SendMessage delivers a Markdown-formatted text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	if !c.Enabled() {
		return errors.New("telegram: bot token not configured")
	}

	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.cfg.APIBase, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("telegram: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.OK {
		if result.Description == "" {
			result.Description = resp.Status
		}
		return fmt.Errorf("telegram: %s", result.Description)
	}
	return nil
}
