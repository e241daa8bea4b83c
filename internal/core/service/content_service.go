package service

import (
	"context"
	"time"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// TeamService manages the public team page entries.
type TeamService struct {
	repo ports.TeamRepository
}

func NewTeamService(repo ports.TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) Create(ctx context.Context, input ports.CreateTeamMemberInput) (*domain.TeamMember, error) {
	return s.repo.Create(ctx, &domain.TeamMember{
		Name:     input.Name,
		Role:     input.Role,
		Photo:    input.Photo,
		Email:    input.Email,
		Phone:    input.Phone,
		Facebook: input.Facebook,
		Twitter:  input.Twitter,
		LinkedIn: input.LinkedIn,
		Order:    input.Order,
		Active:   input.Active,
	})
}

func (s *TeamService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TeamService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Update(ctx context.Context, id string, patch ports.TeamMemberPatch) (*domain.TeamMember, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProgramService manages the listed programs, with search and ordering on the
// list path.
type ProgramService struct {
	repo ports.ProgramRepository
}

func NewProgramService(repo ports.ProgramRepository) *ProgramService {
	return &ProgramService{repo: repo}
}

func (s *ProgramService) Create(ctx context.Context, input ports.CreateProgramInput) (*domain.Program, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Program{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Order:       input.Order,
		Active:      input.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *ProgramService) Get(ctx context.Context, id string) (*domain.Program, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProgramService) List(ctx context.Context, q ports.ProgramQuery) ([]domain.Program, error) {
	if _, ok := domain.ProgramOrderings[q.OrderBy]; !ok {
		q.OrderBy = "order"
	}
	return s.repo.List(ctx, q)
}

func (s *ProgramService) Update(ctx context.Context, id string, patch ports.ProgramPatch) (*domain.Program, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *ProgramService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SettingsService manages the header settings documents. The site reads a
// single active document; GetActive creates it with defaults on first access.
type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetActive returns the active header settings, creating the default record
// on first read. Concurrent first reads may each insert a default; FindFirst
// sorts by created_at ascending, so all readers converge on the oldest record
// and the extras are inert.
func (s *SettingsService) GetActive(ctx context.Context) (*domain.HeaderSettings, error) {
	settings, err := s.repo.FindFirst(ctx)
	if err == nil {
		return settings, nil
	}
	if err != domain.ErrSettingsNotFound {
		return nil, err
	}
	return s.repo.Create(ctx, domain.DefaultHeaderSettings(time.Now().UTC()))
}

func (s *SettingsService) Get(ctx context.Context, id string) (*domain.HeaderSettings, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SettingsService) List(ctx context.Context) ([]domain.HeaderSettings, error) {
	return s.repo.List(ctx)
}

func (s *SettingsService) Create(ctx context.Context, settings *domain.HeaderSettings) (*domain.HeaderSettings, error) {
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now
	return s.repo.Create(ctx, settings)
}

func (s *SettingsService) Update(ctx context.Context, id string, patch ports.HeaderSettingsPatch) (*domain.HeaderSettings, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *SettingsService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
