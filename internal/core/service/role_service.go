package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// RoleService manages the role catalog. Roles have an independent lifecycle;
// deleting one clears the reference on any profile that pointed at it.
type RoleService struct {
	roles    ports.RoleRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, profiles: profiles, logger: logger}
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, name, description string) (*domain.Role, error) {
	return s.roles.Create(ctx, &domain.Role{Name: name, Description: description})
}

func (s *RoleService) Update(ctx context.Context, id, name, description string) (*domain.Role, error) {
	return s.roles.Update(ctx, id, name, description)
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.profiles.ClearRole(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("role_id", id).Msg("failed to clear role from profiles")
		return err
	}
	return nil
}

// ProfileService exposes the user/role link table for administrative use.
type ProfileService struct {
	profiles ports.ProfileRepository
	roles    ports.RoleRepository
}

func NewProfileService(profiles ports.ProfileRepository, roles ports.RoleRepository) *ProfileService {
	return &ProfileService{profiles: profiles, roles: roles}
}

func (s *ProfileService) List(ctx context.Context) ([]ports.ProfileView, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ports.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *s.view(ctx, &profiles[i]))
	}
	return views, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*ports.ProfileView, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, profile), nil
}

func (s *ProfileService) UpdateRole(ctx context.Context, id string, roleID string) (*ports.ProfileView, error) {
	if roleID != "" {
		if _, err := s.roles.FindByID(ctx, roleID); err != nil {
			return nil, err
		}
	}
	profile, err := s.profiles.UpdateRole(ctx, id, roleID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, profile), nil
}

func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return s.profiles.Delete(ctx, id)
}

func (s *ProfileService) view(ctx context.Context, profile *domain.Profile) *ports.ProfileView {
	pv := &ports.ProfileView{ID: profile.ID}
	if profile.RoleID == "" {
		return pv
	}
	role, err := s.roles.FindByID(ctx, profile.RoleID)
	if err != nil {
		return pv
	}
	pv.Role = &ports.RoleView{ID: role.ID, Name: role.Name, Description: role.Description}
	return pv
}
