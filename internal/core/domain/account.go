package domain

import "time"

// User models a registered account. PasswordHash is an opaque bcrypt digest
// and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a named permission group referenced by profiles.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Profile links a user to an optional role. There is at most one profile per
// user; a missing profile is read as "no role assigned", never as an error.
// Deleting a role clears the reference on its profiles instead of cascading.
type Profile struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	RoleID string `json:"role_id,omitempty"`
}

// TokenPair holds the signed access/refresh tokens issued on registration,
// login and refresh. Both are opaque to everything but the token service.
type TokenPair struct {
	Access  string `json:"token"`
	Refresh string `json:"refresh"`
}
