package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/ogf-media/portal-core/internal/comment/entity"
)

// Store is the data access surface the comment service needs.
type Store interface {
	List(ctx context.Context, articleID int64, status string) ([]entity.Comment, error)
	Create(ctx context.Context, c *entity.Comment) (int64, error)
	SetStatus(ctx context.Context, id int64, status string) error
}

var (
	ErrValidation = errors.New("missing fields")
	ErrBadAction  = errors.New("invalid action")
)

// Service holds comment business rules.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// List returns comments with the given status (default approved), oldest
// first. articleID of 0 means all articles, which the moderation queue uses.
func (s *Service) List(ctx context.Context, articleID int64, status string) ([]entity.Comment, error) {
	if status == "" {
		status = "approved"
	}
	return s.store.List(ctx, articleID, status)
}

// Add creates a pending comment on behalf of authorID.
func (s *Service) Add(ctx context.Context, authorID, articleID int64, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if articleID == 0 || text == "" {
		return 0, ErrValidation
	}
	c := &entity.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Text:      text,
		Status:    "pending",
	}
	return s.store.Create(ctx, c)
}

// Moderate approves or rejects a pending comment.
func (s *Service) Moderate(ctx context.Context, id int64, action string) (string, error) {
	var status string
	switch action {
	case "approve":
		status = "approved"
	case "reject":
		status = "rejected"
	default:
		return "", ErrBadAction
	}
	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return "", err
	}
	return status, nil
}
