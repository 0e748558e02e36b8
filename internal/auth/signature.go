package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// VerifyWidgetSignature checks that a set of login fields was signed by the
// Telegram login widget for the bot owning botToken. The data-check string is
// every field except "hash" formatted as key=value, sorted, and joined with
// newlines; the signing key is SHA-256 of the bot token; the signature is the
// hex HMAC-SHA256 of the check string.
//
// An empty bot token always fails; the caller decides whether an unconfigured
// token means development mode.
func VerifyWidgetSignature(botToken string, fields map[string]string) bool {
	if botToken == "" {
		return false
	}
	supplied := fields["hash"]

	lines := make([]string, 0, len(fields))
	for k, v := range fields {
		if k == "hash" {
			continue
		}
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)

	key := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, key[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	computed := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(supplied))
}
