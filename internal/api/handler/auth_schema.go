package handler

import "github.com/webadmin/cms-api/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    string `json:"role_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// authResponse is returned by register, login and refresh. User is omitted on
// refresh; Message is only set on register and logout.
type authResponse struct {
	Token   string          `json:"token"`
	Refresh string          `json:"refresh"`
	User    *ports.UserView `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

type userInfoResponse struct {
	User *ports.UserView `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
