package ports

import (
	"context"

	"github.com/webadmin/cms-api/internal/core/domain"
)

// RegisterInput carries all data accepted at registration. RoleID is
// best-effort: an unknown id yields a role-less profile, not a failure.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	RoleID      string
	IsStaff     bool
	IsSuperuser bool
}

// RoleView is the role shape embedded in user views.
type RoleView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProfileView is the profile shape embedded in user views. Role is null when
// the profile has no role assigned.
type ProfileView struct {
	ID   string    `json:"id"`
	Role *RoleView `json:"role"`
}

// UserView is the user summary returned by register, login and whoami.
// Profile is null when the user has no profile row; readers must tolerate it.
type UserView struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	IsStaff     bool         `json:"is_staff"`
	IsSuperuser bool         `json:"is_superuser"`
	Profile     *ProfileView `json:"profile"`
}

// AuthResult bundles the issued token pair with the user view.
type AuthResult struct {
	Tokens domain.TokenPair
	User   UserView
}

// AccountService provisions accounts and authenticates sessions.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	UserInfo(ctx context.Context, userID string) (*UserView, error)

	// Administrative user directory.
	ListUsers(ctx context.Context) ([]UserView, error)
	UpdateUser(ctx context.Context, id string, patch UserUpdateInput) (*UserView, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserUpdateInput is the allow-listed admin patch for a user. Password, when
// set, is hashed before storage; RoleID updates the user's profile link.
type UserUpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	IsActive  *bool
	IsStaff   *bool
	Password  *string
	RoleID    *string
}

// RoleService manages the role catalog. Delete clears the role from every
// profile referencing it rather than cascading.
type RoleService interface {
	List(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, name, description string) (*domain.Role, error)
	Update(ctx context.Context, id, name, description string) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}

// ProfileService exposes the profile link table. Profiles are created by the
// provisioner; only the role link is mutable here.
type ProfileService interface {
	List(ctx context.Context) ([]ProfileView, error)
	Get(ctx context.Context, id string) (*ProfileView, error)
	UpdateRole(ctx context.Context, id string, roleID string) (*ProfileView, error)
	Delete(ctx context.Context, id string) error
}
