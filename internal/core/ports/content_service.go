package ports

import (
	"context"

	"github.com/webadmin/cms-api/internal/core/domain"
)

// CreateArticleInput carries the writable fields for a new article. AuthorID
// is the authenticated creator when available.
type CreateArticleInput struct {
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	Date       string
	ImageURL   string
	Published  bool
}

// AuthorView is the author summary embedded in article views.
type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ArticleView is an article with its author reference resolved. Author is
// null when the article has no stored author or the account has since been
// deleted; readers must tolerate it.
type ArticleView struct {
	domain.Article
	Author *AuthorView `json:"author"`
}

// ArticleService manages blog posts. Create derives a unique slug from the
// title and sets the public URL from it.
type ArticleService interface {
	Create(ctx context.Context, input CreateArticleInput) (*ArticleView, error)
	Get(ctx context.Context, id string) (*ArticleView, error)
	GetBySlug(ctx context.Context, slug string) (*ArticleView, error)
	List(ctx context.Context, q ArticleQuery) ([]ArticleView, error)
	Update(ctx context.Context, id string, patch ArticlePatch) (*ArticleView, error)
	Delete(ctx context.Context, id string) error
}

// CreateTeamMemberInput carries the writable fields for a new team member.
type CreateTeamMemberInput struct {
	Name     string
	Role     string
	Photo    string
	Email    string
	Phone    string
	Facebook string
	Twitter  string
	LinkedIn string
	Order    int
	Active   bool
}

type TeamService interface {
	Create(ctx context.Context, input CreateTeamMemberInput) (*domain.TeamMember, error)
	Get(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]domain.TeamMember, error)
	Update(ctx context.Context, id string, patch TeamMemberPatch) (*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// CreateProgramInput carries the writable fields for a new program.
type CreateProgramInput struct {
	Title       string
	Description string
	Category    string
	Order       int
	Active      bool
}

type ProgramService interface {
	Create(ctx context.Context, input CreateProgramInput) (*domain.Program, error)
	Get(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context, q ProgramQuery) ([]domain.Program, error)
	Update(ctx context.Context, id string, patch ProgramPatch) (*domain.Program, error)
	Delete(ctx context.Context, id string) error
}

// SettingsService manages header settings. GetActive returns the first
// document, creating one with defaults when none exists yet.
type SettingsService interface {
	GetActive(ctx context.Context) (*domain.HeaderSettings, error)
	Get(ctx context.Context, id string) (*domain.HeaderSettings, error)
	List(ctx context.Context) ([]domain.HeaderSettings, error)
	Create(ctx context.Context, settings *domain.HeaderSettings) (*domain.HeaderSettings, error)
	Update(ctx context.Context, id string, patch HeaderSettingsPatch) (*domain.HeaderSettings, error)
	Delete(ctx context.Context, id string) error
}
