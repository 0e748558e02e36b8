package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ogf-media/portal-core/internal/auth/entity"
)

// UserRepo provides data access for the users table.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  telegram_id BIGINT NOT NULL UNIQUE,
  username TEXT,
  first_name TEXT,
  last_name TEXT,
  photo_url TEXT,
  is_admin BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// UpsertUser inserts or updates a user by Telegram identity. Display fields
// are replaced with the latest values on every login, nulls included. The
// admin flag is untouched.
func (r *UserRepo) UpsertUser(ctx context.Context, u *entity.User) (int64, bool, error) {
	const q = `
INSERT INTO users (telegram_id, username, first_name, last_name, photo_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (telegram_id) DO UPDATE
SET username = EXCLUDED.username, first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name, photo_url = EXCLUDED.photo_url
RETURNING id, is_admin`
	var (
		id      int64
		isAdmin bool
	)
	row := r.db.QueryRowxContext(ctx, q, u.TelegramID, u.Username, u.FirstName, u.LastName, u.PhotoURL)
	if err := row.Scan(&id, &isAdmin); err != nil {
		return 0, false, err
	}
	u.ID = id
	u.IsAdmin = isAdmin
	return id, isAdmin, nil
}

// IsAdmin reports the admin flag for an internal user id. Unknown users are
// not admins.
func (r *UserRepo) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT is_admin FROM users WHERE id = $1`
	var isAdmin bool
	if err := r.db.GetContext(ctx, &isAdmin, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}
