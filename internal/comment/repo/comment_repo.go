package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ogf-media/portal-core/internal/comment/entity"
)

// CommentRepo provides data access for the comments table.
type CommentRepo struct {
	db *sqlx.DB
}

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

// EnsureTable creates the comments table if not exists (idempotent).
func (r *CommentRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS comments (
  id BIGSERIAL PRIMARY KEY,
  article_id BIGINT NOT NULL,
  author_id BIGINT NOT NULL,
  text TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments (article_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// List returns comments with the given status, oldest first. articleID of 0
// means all articles.
func (r *CommentRepo) List(ctx context.Context, articleID int64, status string) ([]entity.Comment, error) {
	q := `
SELECT cm.id, cm.article_id, cm.text, cm.status, cm.created_at,
       COALESCE(u.first_name, u.username, 'Гражданин ОГФ') AS author_name,
       cm.author_id
FROM comments cm
LEFT JOIN users u ON cm.author_id = u.id
WHERE cm.status = $1`
	args := []any{status}
	if articleID != 0 {
		q += ` AND cm.article_id = $2`
		args = append(args, articleID)
	}
	q += ` ORDER BY cm.created_at ASC`

	comments := []entity.Comment{}
	if err := r.db.SelectContext(ctx, &comments, q, args...); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) (int64, error) {
	const q = `
INSERT INTO comments (article_id, author_id, text, status)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	row := r.db.QueryRowxContext(ctx, q, c.ArticleID, c.AuthorID, c.Text, c.Status)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *CommentRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE comments SET status = $2 WHERE id = $1`, id, status)
	return err
}
