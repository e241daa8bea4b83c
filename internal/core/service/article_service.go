package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/webadmin/cms-api/internal/api/metrics"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

const slugCreateAttempts = 3

// ArticleService manages blog posts. The slug is derived from the title at
// creation, made unique with a numeric suffix, and never changes afterwards;
// the public URL is always computed from it. Responses embed the resolved
// author summary.
type ArticleService struct {
	repo   ports.ArticleRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, users ports.UserRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, users: users, logger: logger}
}

func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*ports.ArticleView, error) {
	now := time.Now().UTC()

	// The unique index can still reject the chosen slug when two creates race
	// on the same title, so retry with a fresh suffix a couple of times.
	var created *domain.Article
	for attempt := 0; attempt < slugCreateAttempts; attempt++ {
		articleSlug, err := s.uniqueSlug(ctx, input.Title)
		if err != nil {
			return nil, err
		}

		created, err = s.repo.Create(ctx, &domain.Article{
			Title:      input.Title,
			Content:    input.Content,
			AuthorID:   input.AuthorID,
			AuthorName: input.AuthorName,
			Date:       input.Date,
			ImageURL:   input.ImageURL,
			URL:        domain.ArticleURL(articleSlug),
			Published:  input.Published,
			Slug:       articleSlug,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
		created = nil
	}
	if created == nil {
		return nil, domain.ErrSlugTaken
	}

	metrics.ArticlesCreatedTotal.Inc()
	s.logger.Info().Str("slug", created.Slug).Str("article_id", created.ID).Msg("article created")
	return s.view(ctx, created), nil
}

// uniqueSlug slugifies the title and appends -2, -3, ... until the result is
// free.
func (s *ArticleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "article"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ArticleService) Get(ctx context.Context, id string) (*ports.ArticleView, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, article), nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*ports.ArticleView, error) {
	article, err := s.repo.FindBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, article), nil
}

func (s *ArticleService) List(ctx context.Context, q ports.ArticleQuery) ([]ports.ArticleView, error) {
	articles, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]ports.ArticleView, 0, len(articles))
	for i := range articles {
		views = append(views, *s.view(ctx, &articles[i]))
	}
	return views, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, patch ports.ArticlePatch) (*ports.ArticleView, error) {
	article, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, article), nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// view embeds the resolved author summary. A missing or deleted author
// renders as null, never an error.
func (s *ArticleService) view(ctx context.Context, article *domain.Article) *ports.ArticleView {
	view := &ports.ArticleView{Article: *article}
	if article.AuthorID == "" {
		return view
	}
	author, err := s.users.FindByID(ctx, article.AuthorID)
	if err != nil {
		return view
	}
	view.Author = &ports.AuthorView{ID: author.ID, Username: author.Username, Email: author.Email}
	return view
}
