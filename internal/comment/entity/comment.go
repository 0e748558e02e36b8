package entity

import "time"

// Comment is a reader comment on an article. Comments go through the same
// pending/approved/rejected moderation pipeline as articles.
type Comment struct {
	ID         int64     `db:"id" json:"id"`
	ArticleID  int64     `db:"article_id" json:"article_id"`
	Text       string    `db:"text" json:"text"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	AuthorName string    `db:"author_name" json:"author_name"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
}
