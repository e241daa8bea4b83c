package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type stubArticleRepo struct {
	articles map[string]*domain.Article
	nextID   int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) Create(_ context.Context, article *domain.Article) (*domain.Article, error) {
	for _, a := range r.articles {
		if a.Slug == article.Slug {
			return nil, domain.ErrSlugTaken
		}
	}
	r.nextID++
	clone := *article
	clone.ID = "a" + strconv.Itoa(r.nextID)
	r.articles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) FindBySlug(_ context.Context, slug string) (*domain.Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubArticleRepo) List(_ context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if q.PublishedOnly && !a.Published {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, id string, patch ports.ArticlePatch) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Published != nil {
		a.Published = *patch.Published
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func TestArticleService_Create_DerivesSlug(t *testing.T) {
	svc := NewArticleService(newStubArticleRepo(), newStubUserRepo(), zerolog.Nop())

	article, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Hello World, Again!"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.Slug != "hello-world-again" {
		t.Fatalf("unexpected slug: %q", article.Slug)
	}
	if article.URL != "/articles/hello-world-again/" {
		t.Fatalf("unexpected url: %q", article.URL)
	}
}

func TestArticleService_Create_SuffixesDuplicateSlugs(t *testing.T) {
	svc := NewArticleService(newStubArticleRepo(), newStubUserRepo(), zerolog.Nop())

	first, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Launch Day"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Launch Day"})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	third, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Launch Day"})
	if err != nil {
		t.Fatalf("third create failed: %v", err)
	}

	if first.Slug != "launch-day" || second.Slug != "launch-day-2" || third.Slug != "launch-day-3" {
		t.Fatalf("unexpected slugs: %q %q %q", first.Slug, second.Slug, third.Slug)
	}
}

func TestArticleService_Create_EmptyTitleFallsBack(t *testing.T) {
	svc := NewArticleService(newStubArticleRepo(), newStubUserRepo(), zerolog.Nop())

	article, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "???"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.Slug != "article" {
		t.Fatalf("expected fallback slug, got %q", article.Slug)
	}
}

func TestArticleService_ResolvesAuthor(t *testing.T) {
	users := newStubUserRepo()
	author, err := users.Create(context.Background(), &domain.User{
		Username: "jo",
		Email:    "jo@example.com",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed author failed: %v", err)
	}
	svc := NewArticleService(newStubArticleRepo(), users, zerolog.Nop())

	view, err := svc.Create(context.Background(), ports.CreateArticleInput{
		Title:    "Signed Piece",
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Author == nil {
		t.Fatalf("expected resolved author, got nil")
	}
	if view.Author.ID != author.ID || view.Author.Username != "jo" || view.Author.Email != "jo@example.com" {
		t.Fatalf("unexpected author view: %+v", view.Author)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"author":{"id":"`+author.ID+`"`) {
		t.Fatalf("serialized article missing author object: %s", body)
	}

	got, err := svc.GetBySlug(context.Background(), view.Slug)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.Author == nil || got.Author.Username != "jo" {
		t.Fatalf("read path lost the author: %+v", got.Author)
	}
}

func TestArticleService_MissingAuthorIsNull(t *testing.T) {
	svc := NewArticleService(newStubArticleRepo(), newStubUserRepo(), zerolog.Nop())

	view, err := svc.Create(context.Background(), ports.CreateArticleInput{
		Title:    "Orphaned",
		AuthorID: "u404",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Author != nil {
		t.Fatalf("dangling author id must render as null, got %+v", view.Author)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"author":null`) {
		t.Fatalf("serialized article must carry an explicit null author: %s", body)
	}
}

func TestArticleService_List_PublishedOnly(t *testing.T) {
	repo := newStubArticleRepo()
	svc := NewArticleService(repo, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Draft"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "Live", Published: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := svc.List(context.Background(), ports.ArticleQuery{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(published) != 1 || published[0].Title != "Live" {
		t.Fatalf("unexpected published list: %+v", published)
	}

	all, err := svc.List(context.Background(), ports.ArticleQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(all))
	}
}
