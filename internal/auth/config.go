package auth

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// BotToken is the Telegram bot token used both as the widget signature
	// secret and as the bearer for code delivery. When empty the service runs
	// in development mode: signatures are not enforced and codes are not
	// delivered.
	BotToken string
	// AdminIDs is the allow-list of Telegram identities permitted to request
	// elevation codes.
	AdminIDs      []int64
	SessionSecret string
	SessionTTL    time.Duration
	CodeTTL       time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminIDs:      parseAdminIDs(os.Getenv("ADMIN_TELEGRAM_IDS")),
		SessionSecret: envString("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    envDuration("SESSION_TTL", 24*time.Hour),
		CodeTTL:       envDuration("ADMIN_CODE_TTL", 10*time.Minute),
	}
}

// parseAdminIDs splits a comma-separated list of Telegram ids, skipping
// anything that is not a number.
func parseAdminIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
