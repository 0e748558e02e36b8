package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ogf-media/portal-core/internal/article/entity"
)

type fakeStore struct {
	nextID   int64
	articles map[int64]*entity.Article
	views    map[int64]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{articles: map[int64]*entity.Article{}, views: map[int64]int{}}
}

func (f *fakeStore) List(ctx context.Context, status string, channelID int64) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range f.articles {
		if a.Status != status {
			continue
		}
		if channelID != 0 && a.ChannelID != channelID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id int64) (*entity.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) IncrementViews(ctx context.Context, id int64) error {
	f.views[id]++
	if a, ok := f.articles[id]; ok {
		a.Views++
	}
	return nil
}

func (f *fakeStore) Create(ctx context.Context, a *entity.Article) (int64, error) {
	f.nextID++
	stored := *a
	stored.ID = f.nextID
	f.articles[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeStore) SetStatus(ctx context.Context, id int64, status string, breaking bool) error {
	a, ok := f.articles[id]
	if !ok {
		return nil
	}
	a.Status = status
	a.IsBreaking = breaking
	return nil
}

func TestSubmitStartsPending(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	id, err := svc.Submit(context.Background(), 7, 1, "  Заголовок  ", "Текст статьи")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	a := store.articles[id]
	if a.Status != "pending" {
		t.Fatalf("expected pending status, got %q", a.Status)
	}
	if a.Title != "Заголовок" {
		t.Fatalf("expected trimmed title, got %q", a.Title)
	}
	if a.AuthorID != 7 || a.ChannelID != 1 {
		t.Fatalf("unexpected article: %+v", a)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(newFakeStore())

	cases := []struct {
		title, content string
		channelID      int64
	}{
		{"", "content", 1},
		{"title", "", 1},
		{"title", "content", 0},
		{"   ", "content", 1},
	}
	for _, c := range cases {
		if _, err := svc.Submit(context.Background(), 7, c.channelID, c.title, c.content); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", c, err)
		}
	}
}

func TestSubmitShortContentKeptWhole(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	id, err := svc.Submit(context.Background(), 7, 1, "title", "короткий текст")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := store.articles[id].Excerpt; got != "короткий текст" {
		t.Fatalf("expected excerpt to equal content, got %q", got)
	}
}

func TestSubmitLongContentTruncatedByRunes(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	// 300 Cyrillic runes, 600 bytes: truncation must count runes
	content := strings.Repeat("ж", 300)
	id, err := svc.Submit(context.Background(), 7, 1, "title", content)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := store.articles[id].Excerpt
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 200 {
		t.Fatalf("expected 200-rune excerpt, got %d", n)
	}
}

func TestFeedDefaultsToPublished(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	pendingID, _ := svc.Submit(context.Background(), 7, 1, "pending one", "text")
	publishedID, _ := svc.Submit(context.Background(), 7, 1, "published one", "text")
	if _, err := svc.Moderate(context.Background(), publishedID, "approve", false); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	feed, err := svc.Feed(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != publishedID {
		t.Fatalf("expected only the published article, got %+v", feed)
	}

	pending, err := svc.Feed(context.Background(), "pending", 0)
	if err != nil {
		t.Fatalf("feed pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != pendingID {
		t.Fatalf("expected the pending article, got %+v", pending)
	}
}

func TestFeedChannelFilter(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	a, _ := svc.Submit(context.Background(), 7, 1, "channel one", "text")
	b, _ := svc.Submit(context.Background(), 7, 2, "channel two", "text")
	svc.Moderate(context.Background(), a, "approve", false)
	svc.Moderate(context.Background(), b, "approve", false)

	feed, err := svc.Feed(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != b {
		t.Fatalf("expected only channel 2 articles, got %+v", feed)
	}
}

func TestModerateTransitions(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	id, _ := svc.Submit(context.Background(), 7, 1, "title", "text")

	status, err := svc.Moderate(context.Background(), id, "approve", true)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if status != "published" {
		t.Fatalf("expected published, got %q", status)
	}
	if !store.articles[id].IsBreaking {
		t.Fatalf("expected breaking flag to be set")
	}

	status, err = svc.Moderate(context.Background(), id, "reject", false)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if status != "rejected" {
		t.Fatalf("expected rejected, got %q", status)
	}

	if _, err := svc.Moderate(context.Background(), id, "archive", false); !errors.Is(err, ErrBadAction) {
		t.Fatalf("expected ErrBadAction, got %v", err)
	}
}

func TestGetArticleCountsView(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	id, _ := svc.Submit(context.Background(), 7, 1, "title", "text")

	a, err := svc.GetArticle(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Views != 1 {
		t.Fatalf("expected one view, got %d", a.Views)
	}
	if _, err := svc.GetArticle(context.Background(), id); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if store.views[id] != 2 {
		t.Fatalf("expected two recorded views, got %d", store.views[id])
	}
}

func TestGetArticleNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.GetArticle(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
