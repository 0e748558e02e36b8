package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ogf-media/portal-core/internal/auth"
	"github.com/ogf-media/portal-core/internal/auth/entity"
)

// CodeRepo provides data access for the admin_codes table.
type CodeRepo struct {
	db *sqlx.DB
}

func NewCodeRepo(db *sqlx.DB) *CodeRepo { return &CodeRepo{db: db} }

// EnsureTable creates the admin_codes table if not exists (idempotent).
func (r *CodeRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS admin_codes (
  id BIGINT PRIMARY KEY,
  telegram_id BIGINT NOT NULL,
  code TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  expires_at TIMESTAMPTZ NOT NULL,
  used BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS idx_admin_codes_telegram_id ON admin_codes (telegram_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *CodeRepo) InsertCode(ctx context.Context, c *entity.AdminCode) error {
	const q = `
INSERT INTO admin_codes (id, telegram_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.TelegramID, c.Code, c.CreatedAt, c.ExpiresAt)
	return err
}

// ConsumeCode marks the newest live matching code as used and elevates the
// user, all in one transaction. The FOR UPDATE lock on the selected row makes
// a concurrent verification of the same code block and then miss, since the
// re-evaluated used=false predicate no longer holds.
func (r *CodeRepo) ConsumeCode(ctx context.Context, telegramID int64, code string, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const sel = `
SELECT id FROM admin_codes
WHERE telegram_id = $1 AND code = $2 AND used = false AND expires_at > NOW()
ORDER BY created_at DESC
LIMIT 1
FOR UPDATE`
	var id int64
	if err := tx.GetContext(ctx, &id, sel, telegramID, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.ErrCodeNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE admin_codes SET used = true WHERE id = $1`, id); err != nil {
		return err
	}
	if userID != 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET is_admin = true WHERE id = $1`, userID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
