package auth

import (
	"context"
	"errors"

	"github.com/ogf-media/portal-core/internal/auth/entity"
)

var ErrCodeNotFound = errors.New("code not found")

// UserStore persists portal users keyed by Telegram identity.
type UserStore interface {
	// UpsertUser creates the user on first login or replaces the display
	// fields on subsequent logins. Returns the internal id and the current
	// admin flag; the admin flag is never modified by this path.
	UpsertUser(ctx context.Context, u *entity.User) (id int64, isAdmin bool, err error)
	// IsAdmin reports whether the user with the given internal id holds the
	// admin flag. An unknown id is simply not an admin.
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// CodeStore persists admin elevation codes.
type CodeStore interface {
	InsertCode(ctx context.Context, c *entity.AdminCode) error
	// ConsumeCode marks the newest unused, unexpired code matching the
	// Telegram identity and code value as used and, when userID is non-zero,
	// sets that user's admin flag. Both writes happen in one transaction so
	// two concurrent verifications cannot both succeed on the same code.
	// Returns ErrCodeNotFound when nothing matches.
	ConsumeCode(ctx context.Context, telegramID int64, code string, userID int64) error
}

// Messenger delivers one-time codes to a Telegram account.
type Messenger interface {
	// Enabled reports whether delivery credentials are configured. When
	// false, SendMessage is never called and issuance still succeeds.
	Enabled() bool
	SendMessage(ctx context.Context, chatID int64, text string) error
}
