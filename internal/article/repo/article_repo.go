package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ogf-media/portal-core/internal/article/entity"
)

// ArticleRepo provides data access for the articles table.
type ArticleRepo struct {
	db *sqlx.DB
}

func NewArticleRepo(db *sqlx.DB) *ArticleRepo { return &ArticleRepo{db: db} }

// EnsureTable creates the articles table if not exists (idempotent).
func (r *ArticleRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS articles (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  excerpt TEXT NOT NULL DEFAULT '',
  channel_id BIGINT NOT NULL,
  author_id BIGINT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  views INT NOT NULL DEFAULT 0,
  is_breaking BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_articles_status ON articles (status);
CREATE INDEX IF NOT EXISTS idx_articles_channel_id ON articles (channel_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// baseQuery joins channel and author display fields plus the approved-comment
// count onto each article row.
const baseQuery = `
SELECT a.id, a.title, a.content, a.excerpt,
       a.channel_id, c.name AS channel_name, c.color AS channel_color, c.icon AS channel_icon,
       COALESCE(c.is_verified, false) AS channel_verified,
       c.verification_type AS channel_verification_type,
       a.author_id, COALESCE(u.first_name, u.username, 'Гражданин ОГФ') AS author_name,
       a.status, a.views, a.is_breaking, a.created_at,
       COUNT(DISTINCT cm.id) FILTER (WHERE cm.status = 'approved') AS comment_count
FROM articles a
LEFT JOIN channels c ON a.channel_id = c.id
LEFT JOIN users u ON a.author_id = u.id
LEFT JOIN comments cm ON cm.article_id = a.id
`

const baseGroupBy = `
GROUP BY a.id, c.name, c.color, c.icon, c.is_verified, c.verification_type, u.first_name, u.username
`

// List returns articles with the given status, newest first with breaking
// news on top. channelID of 0 means all channels.
func (r *ArticleRepo) List(ctx context.Context, status string, channelID int64) ([]entity.Article, error) {
	q := baseQuery + `WHERE a.status = $1`
	args := []any{status}
	if channelID != 0 {
		q += ` AND a.channel_id = $2`
		args = append(args, channelID)
	}
	q += baseGroupBy + `ORDER BY a.is_breaking DESC, a.created_at DESC`

	articles := []entity.Article{}
	if err := r.db.SelectContext(ctx, &articles, q, args...); err != nil {
		return nil, err
	}
	return articles, nil
}

// Get returns one article or nil when absent.
func (r *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	q := baseQuery + `WHERE a.id = $1` + baseGroupBy
	var a entity.Article
	if err := r.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) (int64, error) {
	const q = `
INSERT INTO articles (title, content, excerpt, channel_id, author_id, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	var id int64
	row := r.db.QueryRowxContext(ctx, q, a.Title, a.Content, a.Excerpt, a.ChannelID, a.AuthorID, a.Status)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

func (r *ArticleRepo) SetStatus(ctx context.Context, id int64, status string, breaking bool) error {
	const q = `UPDATE articles SET status = $2, is_breaking = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status, breaking)
	return err
}
