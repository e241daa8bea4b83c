package ports

import (
	"context"

	"github.com/webadmin/cms-api/internal/core/domain"
)

// UserPatch names exactly the mutable user fields. Nil pointers mean "leave
// unchanged"; PasswordHash carries an already-hashed value, never plaintext.
type UserPatch struct {
	Email        *string
	FirstName    *string
	LastName     *string
	IsActive     *bool
	IsStaff      *bool
	PasswordHash *string
}

// UserRepository persists user credential records. Create must enforce
// username/email uniqueness at the storage layer and report violations as
// domain.ErrUsernameTaken / domain.ErrEmailTaken so concurrent registrations
// lose cleanly.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository persists the role catalog.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Update(ctx context.Context, id string, name, description string) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository persists user/role links. ClearRole detaches a deleted
// role from every profile that referenced it.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	UpdateRole(ctx context.Context, id string, roleID string) (*domain.Profile, error)
	ClearRole(ctx context.Context, roleID string) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
