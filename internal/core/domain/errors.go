package domain

import "errors"

// Account / auth errors.
var (
	ErrMissingCredentials = errors.New("please provide both username and password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProvisioning       = errors.New("account provisioning failed")
	ErrForbidden          = errors.New("access forbidden")
)

// ErrSlugTaken reports a unique-index violation on an article slug.
var ErrSlugTaken = errors.New("slug already exists")

// Not-found errors, one per aggregate so the error handler can map each to a
// specific 404 message.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrArticleNotFound  = errors.New("article not found")
	ErrMemberNotFound   = errors.New("team member not found")
	ErrProgramNotFound  = errors.New("program not found")
	ErrSettingsNotFound = errors.New("header settings not found")
)
