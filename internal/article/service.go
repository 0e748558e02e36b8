package article

import (
	"context"
	"errors"
	"strings"

	"github.com/ogf-media/portal-core/internal/article/entity"
)

const excerptLen = 200

// Store is the data access surface the article service needs.
type Store interface {
	List(ctx context.Context, status string, channelID int64) ([]entity.Article, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	IncrementViews(ctx context.Context, id int64) error
	Create(ctx context.Context, a *entity.Article) (int64, error)
	SetStatus(ctx context.Context, id int64, status string, breaking bool) error
}

var (
	ErrNotFound   = errors.New("article not found")
	ErrValidation = errors.New("missing fields")
	ErrBadAction  = errors.New("invalid action")
)

// Service holds publication business rules: submissions start pending,
// moderation moves them to published or rejected.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// Feed lists articles for the given status (default published), optionally
// scoped to a channel. Breaking news sorts first, then newest.
func (s *Service) Feed(ctx context.Context, status string, channelID int64) ([]entity.Article, error) {
	if status == "" {
		status = "published"
	}
	return s.store.List(ctx, status, channelID)
}

// GetArticle returns one article and counts the view.
func (s *Service) GetArticle(ctx context.Context, id int64) (*entity.Article, error) {
	if err := s.store.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// Submit creates a pending article on behalf of authorID.
func (s *Service) Submit(ctx context.Context, authorID, channelID int64, title, content string) (int64, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || channelID == 0 {
		return 0, ErrValidation
	}
	a := &entity.Article{
		Title:     title,
		Content:   content,
		Excerpt:   makeExcerpt(content),
		ChannelID: channelID,
		AuthorID:  authorID,
		Status:    "pending",
	}
	return s.store.Create(ctx, a)
}

// Moderate approves or rejects a pending article. Approval may also mark it
// breaking.
func (s *Service) Moderate(ctx context.Context, id int64, action string, breaking bool) (string, error) {
	var status string
	switch action {
	case "approve":
		status = "published"
	case "reject":
		status = "rejected"
	default:
		return "", ErrBadAction
	}
	if err := s.store.SetStatus(ctx, id, status, breaking); err != nil {
		return "", err
	}
	return status, nil
}

// makeExcerpt takes the first excerptLen runes of the content.
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLen {
		return content
	}
	return string(runes[:excerptLen]) + "..."
}
