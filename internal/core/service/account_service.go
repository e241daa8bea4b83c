package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/webadmin/cms-api/internal/api/metrics"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// dummyHash is compared against when the username does not exist, so an
// unknown user and a wrong password cost the same and return the same error.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AccountService provisions accounts and authenticates sessions. Registration
// creates the user record, links exactly one profile, and issues a token pair;
// a profile-creation failure rolls the user back so no dangling user is ever
// returned as a success.
type AccountService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	profiles   ports.ProfileRepository
	tokens     ports.TokenIssuer
	denylist   ports.TokenDenylist
	bcryptCost int
	logger     zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	profiles ports.ProfileRepository,
	tokens ports.TokenIssuer,
	denylist ports.TokenDenylist,
	bcryptCost int,
	logger zerolog.Logger,
) *AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		users:      users,
		roles:      roles,
		profiles:   profiles,
		tokens:     tokens,
		denylist:   denylist,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	// Pre-checks give the caller a precise message; the unique indexes on the
	// store close the check-then-create race.
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if input.Email != "" {
		if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if _, err := s.createProfile(ctx, user.ID, input.RoleID); err != nil {
		// Roll back the user so registration never leaves a user without a
		// profile behind a success or a retryable failure.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).Msg("compensating user delete failed")
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("profile creation failed")
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, domain.ErrProvisioning
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user registered")

	view := s.assembleView(ctx, user)
	return &ports.AuthResult{Tokens: *pair, User: *view}, nil
}

// createProfile links exactly one profile to the new user. An unknown role id
// degrades to a role-less profile instead of failing the registration.
func (s *AccountService) createProfile(ctx context.Context, userID, roleID string) (*domain.Profile, error) {
	if roleID != "" {
		if _, err := s.roles.FindByID(ctx, roleID); err != nil {
			if !errors.Is(err, domain.ErrRoleNotFound) {
				return nil, err
			}
			roleID = ""
		}
	}
	return s.profiles.Create(ctx, &domain.Profile{UserID: userID, RoleID: roleID})
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a hash comparison anyway; unknown user and wrong password
			// must be indistinguishable to the caller.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil || !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	view := s.assembleView(ctx, user)
	return &ports.AuthResult{Tokens: *pair, User: *view}, nil
}

// Refresh mints a new token pair from a valid, non-revoked refresh token.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, ports.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrInvalidToken
	}

	return s.tokens.Issue(user)
}

// Logout revokes the supplied refresh token until its natural expiry. Tokens
// are stateless otherwise, so a missing or already-invalid refresh token is
// not an error.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Verify(refreshToken, ports.TokenRefresh)
	if err != nil {
		s.logger.Debug().Err(err).Msg("logout with unusable refresh token")
		return nil
	}
	return s.denylist.Revoke(ctx, claims.JTI, claims.ExpiresAt)
}

func (s *AccountService) UserInfo(ctx context.Context, userID string) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assembleView(ctx, user), nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ports.UserView, 0, len(users))
	for i := range users {
		views = append(views, *s.assembleView(ctx, &users[i]))
	}
	return views, nil
}

func (s *AccountService) UpdateUser(ctx context.Context, id string, input ports.UserUpdateInput) (*ports.UserView, error) {
	patch := ports.UserPatch{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  input.IsActive,
		IsStaff:   input.IsStaff,
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if input.RoleID != nil {
		if err := s.relinkRole(ctx, user.ID, *input.RoleID); err != nil {
			return nil, err
		}
	}

	return s.assembleView(ctx, user), nil
}

// relinkRole points the user's profile at roleID, creating the profile when
// the user predates profile provisioning.
func (s *AccountService) relinkRole(ctx context.Context, userID, roleID string) error {
	if roleID != "" {
		if _, err := s.roles.FindByID(ctx, roleID); err != nil {
			return err
		}
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		_, err = s.profiles.Create(ctx, &domain.Profile{UserID: userID, RoleID: roleID})
		return err
	}
	_, err = s.profiles.UpdateRole(ctx, profile.ID, roleID)
	return err
}

func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.profiles.DeleteByUserID(ctx, id); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	return nil
}

// assembleView builds the user summary returned by register, login and
// whoami. Profile absence is tolerated and rendered as null, never an error.
func (s *AccountService) assembleView(ctx context.Context, user *domain.User) *ports.UserView {
	view := &ports.UserView{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		return view
	}
	view.Profile = s.profileView(ctx, profile)
	return view
}

// profileView resolves the profile's role reference; a dangling role id shows
// up as a null role.
func (s *AccountService) profileView(ctx context.Context, profile *domain.Profile) *ports.ProfileView {
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
