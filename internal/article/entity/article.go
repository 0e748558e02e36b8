package entity

import "time"

// Article is a portal publication joined with its channel and author display
// fields, the way the feed renders it.
type Article struct {
	ID                      int64     `db:"id" json:"id"`
	Title                   string    `db:"title" json:"title"`
	Content                 string    `db:"content" json:"content"`
	Excerpt                 string    `db:"excerpt" json:"excerpt"`
	ChannelID               int64     `db:"channel_id" json:"channel_id"`
	ChannelName             *string   `db:"channel_name" json:"channel_name"`
	ChannelColor            *string   `db:"channel_color" json:"channel_color"`
	ChannelIcon             *string   `db:"channel_icon" json:"channel_icon"`
	ChannelVerified         bool      `db:"channel_verified" json:"channel_verified"`
	ChannelVerificationType *string   `db:"channel_verification_type" json:"channel_verification_type"`
	AuthorID                int64     `db:"author_id" json:"author_id"`
	AuthorName              string    `db:"author_name" json:"author_name"`
	Status                  string    `db:"status" json:"status"`
	Views                   int       `db:"views" json:"views"`
	IsBreaking              bool      `db:"is_breaking" json:"is_breaking"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	CommentCount            int       `db:"comment_count" json:"comment_count"`
}
