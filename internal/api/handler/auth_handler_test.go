package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/api/middleware"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	logoutFn   func(ctx context.Context, refreshToken string) error
	userInfoFn func(ctx context.Context, userID string) (*ports.UserView, error)
}

func (s *stubAccountService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAccountService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.logoutFn(ctx, refreshToken)
}

func (s *stubAccountService) UserInfo(ctx context.Context, userID string) (*ports.UserView, error) {
	return s.userInfoFn(ctx, userID)
}

func (s *stubAccountService) ListUsers(context.Context) ([]ports.UserView, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccountService) UpdateUser(context.Context, string, ports.UserUpdateInput) (*ports.UserView, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccountService) DeleteUser(context.Context, string) error {
	return errors.New("not implemented")
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Username != "alice" || input.Password != "secret" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				Tokens: domain.TokenPair{Access: "acc", Refresh: "ref"},
				User:   ports.UserView{ID: "u1", Username: "alice"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret","email":"a@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "acc" || resp["refresh"] != "ref" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %+v", resp["message"])
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"bob","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "username already exists" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestAuthHandler_Register_MissingCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrMissingCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		loginFn: func(_ context.Context, username, password string) (*ports.AuthResult, error) {
			if username != "carol" || password != "pw" {
				t.Fatalf("unexpected credentials: %s/%s", username, password)
			}
			return &ports.AuthResult{
				Tokens: domain.TokenPair{Access: "acc", Refresh: "ref"},
				User:   ports.UserView{ID: "u1", Username: "carol"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"carol","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"carol","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invalid credentials" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		refreshFn: func(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
			if refreshToken != "old-refresh" {
				return nil, domain.ErrInvalidToken
			}
			return &domain.TokenPair{Access: "new-acc", Refresh: "new-ref"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh":"old-refresh"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh":"revoked"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, rec)

	_ = handler.Refresh(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad refresh token, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	var revoked string
	stub := &stubAccountService{
		logoutFn: func(_ context.Context, refreshToken string) error {
			revoked = refreshToken
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(`{"refresh":"ref"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "u1")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "ref" {
		t.Fatalf("expected refresh token to be revoked, got %q", revoked)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Successfully logged out" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_UserInfo(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		userInfoFn: func(_ context.Context, userID string) (*ports.UserView, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %q", userID)
			}
			return &ports.UserView{ID: "u1", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "u1")

	if err := handler.UserInfo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, present := user["profile"]; !present {
		t.Fatalf("profile key must always be present (null when missing)")
	}
	if user["profile"] != nil {
		t.Fatalf("expected null profile, got %+v", user["profile"])
	}
}
