package entity

import "time"

// Channel is a publisher page on the portal.
type Channel struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description"`
	Icon              string    `db:"icon" json:"icon"`
	Color             string    `db:"color" json:"color"`
	IsVerified        bool      `db:"is_verified" json:"is_verified"`
	VerificationType  *string   `db:"verification_type" json:"verification_type"`
	VerificationLabel *string   `db:"-" json:"verification_label"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	CreatedBy         string    `db:"created_by_name" json:"created_by"`
	CreatedByID       int64     `db:"created_by" json:"-"`
	Posts             int       `db:"posts" json:"posts"`
	Subscribers       int       `db:"-" json:"subscribers"`
}
