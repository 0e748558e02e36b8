package entity

import "time"

// User is a portal account keyed by the Telegram identity that created it.
// Display fields mirror whatever the Telegram widget sent on the most recent
// login; they are replaced wholesale, not merged.
type User struct {
	ID         int64     `db:"id" json:"user_id"`
	TelegramID int64     `db:"telegram_id" json:"telegram_id"`
	Username   *string   `db:"username" json:"username"`
	FirstName  *string   `db:"first_name" json:"first_name"`
	LastName   *string   `db:"last_name" json:"last_name"`
	PhotoURL   *string   `db:"photo_url" json:"photo_url"`
	IsAdmin    bool      `db:"is_admin" json:"is_admin"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// AdminCode is a short-lived one-time code proving possession of a Telegram
// account that may moderate the portal. Rows are never deleted; used and
// expired codes stay behind as an audit trail.
type AdminCode struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Code       string    `db:"code"`
	CreatedAt  time.Time `db:"created_at"`
	ExpiresAt  time.Time `db:"expires_at"`
	Used       bool      `db:"used"`
}
