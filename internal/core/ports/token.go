package ports

import (
	"context"
	"time"

	"github.com/webadmin/cms-api/internal/core/domain"
)

// TokenType distinguishes the two token classes in a pair.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenClaims is the verified identity carried by a token.
type TokenClaims struct {
	UserID    string
	Username  string
	IsStaff   bool
	JTI       string
	TokenType TokenType
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies the access/refresh pair. Verify rejects
// tokens whose type does not match want, so a refresh token can never
// authorize a request and vice versa.
type TokenIssuer interface {
	Issue(user *domain.User) (*domain.TokenPair, error)
	Verify(token string, want TokenType) (*TokenClaims, error)
}

// TokenDenylist records revoked refresh tokens until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
