package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ogf-media/portal-core/internal/channel/entity"
)

// ChannelRepo provides data access for the channels table.
type ChannelRepo struct {
	db *sqlx.DB
}

func NewChannelRepo(db *sqlx.DB) *ChannelRepo { return &ChannelRepo{db: db} }

// EnsureTable creates the channels table if not exists (idempotent).
func (r *ChannelRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS channels (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT 'Newspaper',
  color TEXT NOT NULL DEFAULT 'bg-blue-700',
  created_by BIGINT,
  is_verified BOOLEAN NOT NULL DEFAULT false,
  verification_type TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// List returns all channels with creator display name and published post
// count, verified channels first, oldest first within each group.
func (r *ChannelRepo) List(ctx context.Context) ([]entity.Channel, error) {
	const q = `
SELECT c.id, c.name, c.description, c.icon, c.color,
       c.is_verified, c.verification_type, c.created_at,
       COALESCE(c.created_by, 0) AS created_by,
       COALESCE(u.first_name, u.username, 'ГТРК ОГФ') AS created_by_name,
       COUNT(DISTINCT a.id) AS posts
FROM channels c
LEFT JOIN users u ON c.created_by = u.id
LEFT JOIN articles a ON a.channel_id = c.id AND a.status = 'published'
GROUP BY c.id, u.first_name, u.username
ORDER BY c.is_verified DESC, c.created_at ASC`
	channels := []entity.Channel{}
	if err := r.db.SelectContext(ctx, &channels, q); err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepo) Create(ctx context.Context, c *entity.Channel) (int64, error) {
	const q = `
INSERT INTO channels (name, description, icon, color, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	var id int64
	row := r.db.QueryRowxContext(ctx, q, c.Name, c.Description, c.Icon, c.Color, c.CreatedByID)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

// SetVerification grants or revokes the badge. A nil vtype clears the type.
func (r *ChannelRepo) SetVerification(ctx context.Context, id int64, verified bool, vtype *string) error {
	const q = `UPDATE channels SET is_verified = $2, verification_type = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, verified, vtype)
	return err
}
