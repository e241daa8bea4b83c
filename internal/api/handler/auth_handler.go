package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register creates a new account and returns a token pair with the user view.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	result, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    req.RoleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials),
			errors.Is(err, domain.ErrUsernameTaken),
			errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		// Provisioning and store failures are internal, not the caller's fault.
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token:   result.Tokens.Access,
		Refresh: result.Tokens.Refresh,
		User:    &result.User,
		Message: "User registered successfully",
	})
}

// Login authenticates a user and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:   result.Tokens.Access,
		Refresh: result.Tokens.Refresh,
		User:    &result.User,
	})
}

// Refresh exchanges a valid refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	pair, err := h.accounts.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: pair.Access, Refresh: pair.Refresh})
}

// Logout revokes the caller's refresh token. The body is optional: without a
// refresh token the access token simply ages out.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logoutRequest  false  "Refresh token to revoke"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req logoutRequest
	_ = c.Bind(&req) // body is optional

	if err := h.accounts.Logout(c.Request().Context(), req.Refresh); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// UserInfo returns the authenticated user's view. A missing profile renders
// as null, never as an error.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userInfoResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/user [get]
func (h *AuthHandler) UserInfo(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	view, err := h.accounts.UserInfo(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userInfoResponse{User: view})
}
