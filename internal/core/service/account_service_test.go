package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/webadmin/cms-api/internal/api/metrics"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	createErr  error
	failDelete bool
	deleted    []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if user.Email != "" && u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.IsStaff != nil {
		u.IsStaff = *patch.IsStaff
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	if clone.ID == "" {
		clone.ID = "r" + strconv.Itoa(len(r.roles)+1)
	}
	r.roles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) Update(_ context.Context, id, name, description string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	role.Name = name
	role.Description = description
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

type stubProfileRepo struct {
	profiles   map[string]*domain.Profile
	nextID     int
	failCreate bool
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if r.failCreate {
		return nil, errors.New("profile insert failed")
	}
	r.nextID++
	clone := *profile
	clone.ID = "p" + strconv.Itoa(r.nextID)
	r.profiles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProfileRepo) UpdateRole(_ context.Context, id string, roleID string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.RoleID = roleID
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) ClearRole(_ context.Context, roleID string) error {
	for _, p := range r.profiles {
		if p.RoleID == roleID {
			p.RoleID = ""
		}
	}
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

func (r *stubProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
			return nil
		}
	}
	return domain.ErrProfileNotFound
}

type stubDenylist struct {
	revoked map[string]bool
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]bool)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, _ time.Time) error {
	d.revoked[jti] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

type accountFixture struct {
	users    *stubUserRepo
	roles    *stubRoleRepo
	profiles *stubProfileRepo
	denylist *stubDenylist
	svc      *AccountService
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		users:    newStubUserRepo(),
		roles:    newStubRoleRepo(),
		profiles: newStubProfileRepo(),
		denylist: newStubDenylist(),
	}
	tokens := NewTokenService("test-secret", time.Minute, time.Hour)
	f.svc = NewAccountService(f.users, f.roles, f.profiles, tokens, f.denylist, bcrypt.MinCost, zerolog.Nop())
	return f
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountFixture()

	result, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pass123",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Tokens.Access == "" || result.Tokens.Refresh == "" {
		t.Fatalf("expected token pair, got %+v", result.Tokens)
	}
	if result.User.Username != "alice" {
		t.Fatalf("unexpected user view: %+v", result.User)
	}
	if result.User.Profile == nil {
		t.Fatalf("expected profile to be provisioned")
	}
	if result.User.Profile.Role != nil {
		t.Fatalf("expected role-less profile, got %+v", result.User.Profile.Role)
	}

	stored, err := f.users.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stored user lookup failed: %v", err)
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("new users must be active")
	}
}

func TestAccountService_Register_MissingCredentials(t *testing.T) {
	f := newAccountFixture()

	cases := []ports.RegisterInput{
		{Username: "", Password: "x"},
		{Username: "x", Password: ""},
	}
	for _, input := range cases {
		if _, err := f.svc.Register(context.Background(), input); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials for %+v, got %v", input, err)
		}
	}
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	f := newAccountFixture()

	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw2"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	f := newAccountFixture()

	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw", Email: "bob@example.com"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "rob", Password: "pw", Email: "bob@example.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Two accounts without an email never collide.
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carl", Password: "pw"}); err != nil {
		t.Fatalf("register without email failed: %v", err)
	}
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "dana", Password: "pw"}); err != nil {
		t.Fatalf("second register without email failed: %v", err)
	}
}

// A concurrent insert can win the username between the pre-check and the
// repository Create; the unique-index error must surface as the same conflict
// the pre-check would have reported.
func TestAccountService_Register_InsertConflict(t *testing.T) {
	f := newAccountFixture()
	f.users.createErr = domain.ErrUsernameTaken

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken from insert conflict, got %v", err)
	}
}

func TestAccountService_Register_MetricLabels(t *testing.T) {
	f := newAccountFixture()
	conflicts := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues("conflict"))
	failures := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues("error"))

	f.users.createErr = errors.New("connection reset by peer")
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw"}); err == nil {
		t.Fatalf("expected infrastructure error to surface")
	}
	if got := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues("error")); got != failures+1 {
		t.Fatalf("expected error count %v, got %v", failures+1, got)
	}

	f.users.createErr = domain.ErrEmailTaken
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues("conflict")); got != conflicts+1 {
		t.Fatalf("expected conflict count %v, got %v", conflicts+1, got)
	}
	if got := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues("error")); got != failures+1 {
		t.Fatalf("conflict must not count as error, got %v", got)
	}
}

func TestAccountService_Register_WithRole(t *testing.T) {
	f := newAccountFixture()
	role, _ := f.roles.Create(context.Background(), &domain.Role{Name: "editor"})

	result, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pw",
		RoleID:   role.ID,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Profile == nil || result.User.Profile.Role == nil {
		t.Fatalf("expected profile with role, got %+v", result.User.Profile)
	}
	if result.User.Profile.Role.Name != "editor" {
		t.Fatalf("unexpected role: %+v", result.User.Profile.Role)
	}
}

func TestAccountService_Register_UnknownRoleDegrades(t *testing.T) {
	f := newAccountFixture()

	result, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pw",
		RoleID:   "missing",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Profile == nil {
		t.Fatalf("expected profile despite unknown role")
	}
	if result.User.Profile.Role != nil {
		t.Fatalf("unknown role must yield a role-less profile, got %+v", result.User.Profile.Role)
	}
}

func TestAccountService_Register_ProfileFailureRollsBack(t *testing.T) {
	f := newAccountFixture()
	f.profiles.failCreate = true

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw"})
	if !errors.Is(err, domain.ErrProvisioning) {
		t.Fatalf("expected ErrProvisioning, got %v", err)
	}
	if _, err := f.users.FindByUsername(context.Background(), "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected compensating user delete, user still present (err=%v)", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	f := newAccountFixture()
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := f.svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Tokens.Access == "" || result.Tokens.Refresh == "" {
		t.Fatalf("expected token pair")
	}
	if result.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestAccountService_Login_FailuresIndistinguishable(t *testing.T) {
	f := newAccountFixture()
	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := f.svc.Login(context.Background(), "nobody", "whatever")
	_, wrongPwErr := f.svc.Login(context.Background(), "carol", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwErr)
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Fatalf("failure causes must be indistinguishable: %q vs %q", unknownErr, wrongPwErr)
	}
}

func TestAccountService_Login_InactiveUser(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	inactive := false
	if _, err := f.users.Update(context.Background(), result.User.ID, ports.UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "carol", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAccountService_Refresh_RoundTrip(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := f.svc.Refresh(context.Background(), result.Tokens.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected fresh pair, got %+v", pair)
	}
}

func TestAccountService_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := f.svc.Refresh(context.Background(), result.Tokens.Access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
}

func TestAccountService_Logout_RevokesRefreshToken(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := f.svc.Logout(context.Background(), result.Tokens.Refresh); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.svc.Refresh(context.Background(), result.Tokens.Refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestAccountService_Logout_ToleratesMissingToken(t *testing.T) {
	f := newAccountFixture()

	if err := f.svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without token should succeed, got %v", err)
	}
	if err := f.svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with invalid token should succeed, got %v", err)
	}
}

func TestAccountService_UpdateUser_PasswordAndRole(t *testing.T) {
	f := newAccountFixture()
	role, _ := f.roles.Create(context.Background(), &domain.Role{Name: "editor"})
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "old"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newPassword := "newpass"
	view, err := f.svc.UpdateUser(context.Background(), result.User.ID, ports.UserUpdateInput{
		Password: &newPassword,
		RoleID:   &role.ID,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.Profile == nil || view.Profile.Role == nil || view.Profile.Role.ID != role.ID {
		t.Fatalf("expected relinked role, got %+v", view.Profile)
	}

	if _, err := f.svc.Login(context.Background(), "carol", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "carol", "newpass"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestAccountService_UpdateUser_UnknownRoleFails(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	missing := "missing"
	if _, err := f.svc.UpdateUser(context.Background(), result.User.ID, ports.UserUpdateInput{RoleID: &missing}); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestAccountService_DeleteUser_RemovesProfile(t *testing.T) {
	f := newAccountFixture()
	result, err := f.svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := f.svc.DeleteUser(context.Background(), result.User.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.users.FindByID(context.Background(), result.User.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present: %v", err)
	}
	if _, err := f.profiles.FindByUserID(context.Background(), result.User.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("profile still present: %v", err)
	}
}

func TestAccountService_UserInfo_MissingProfileIsNull(t *testing.T) {
	f := newAccountFixture()
	user, err := f.users.Create(context.Background(), &domain.User{Username: "legacy", IsActive: true})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	view, err := f.svc.UserInfo(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("UserInfo failed: %v", err)
	}
	if view.Profile != nil {
		t.Fatalf("expected null profile for legacy user, got %+v", view.Profile)
	}
}
