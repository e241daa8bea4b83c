package ports

import (
	"context"

	"github.com/webadmin/cms-api/internal/core/domain"
)

// ArticlePatch names the mutable article fields. Slug and URL are derived at
// creation and never patched directly.
type ArticlePatch struct {
	Title      *string
	Content    *string
	AuthorName *string
	Date       *string
	ImageURL   *string
	Published  *bool
}

// ArticleQuery filters article listings.
type ArticleQuery struct {
	PublishedOnly bool
}

// ArticleRepository persists articles. Create must enforce slug uniqueness and
// report violations as domain.ErrSlugTaken.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, q ArticleQuery) ([]domain.Article, error)
	Update(ctx context.Context, id string, patch ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}

// TeamMemberPatch names the mutable team member fields.
type TeamMemberPatch struct {
	Name     *string
	Role     *string
	Photo    *string
	Email    *string
	Phone    *string
	Facebook *string
	Twitter  *string
	LinkedIn *string
	Order    *int
	Active   *bool
}

type TeamRepository interface {
	Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMember, error)
	FindByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]domain.TeamMember, error)
	Update(ctx context.Context, id string, patch TeamMemberPatch) (*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// ProgramQuery carries the list filters: Search matches title, description or
// category; OrderBy is one of domain.ProgramOrderings (default "order").
type ProgramQuery struct {
	Search  string
	OrderBy string
}

// ProgramPatch names the mutable program fields.
type ProgramPatch struct {
	Title       *string
	Description *string
	Category    *string
	Order       *int
	Active      *bool
}

type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (*domain.Program, error)
	FindByID(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context, q ProgramQuery) ([]domain.Program, error)
	Update(ctx context.Context, id string, patch ProgramPatch) (*domain.Program, error)
	Delete(ctx context.Context, id string) error
}

// HeaderSettingsPatch names the mutable header settings fields.
type HeaderSettingsPatch struct {
	SiteTitle             *string
	SiteSubtitle          *string
	HeaderLogoURL         *string
	HeaderBackgroundColor *string
	HeaderTextColor       *string
	ShowHeader            *bool
}

// SettingsRepository persists header settings documents. FindFirst returns the
// oldest document or domain.ErrSettingsNotFound when the collection is empty.
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.HeaderSettings) (*domain.HeaderSettings, error)
	FindByID(ctx context.Context, id string) (*domain.HeaderSettings, error)
	FindFirst(ctx context.Context) (*domain.HeaderSettings, error)
	List(ctx context.Context) ([]domain.HeaderSettings, error)
	Update(ctx context.Context, id string, patch HeaderSettingsPatch) (*domain.HeaderSettings, error)
	Delete(ctx context.Context, id string) error
}
