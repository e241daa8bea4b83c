package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/webadmin/cms-api/internal/api/metrics"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
}

// TokenService signs and verifies HS256 access/refresh pairs. The two token
// classes carry independent TTLs and a token_type claim so one can never
// stand in for the other.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue signs a fresh access/refresh pair bound to the user's identity.
func (s *TokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.sign(user, ports.TokenAccess, now, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, ports.TokenRefresh, now, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenAccess)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenRefresh)).Inc()

	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *TokenService) sign(user *domain.User, tt ports.TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		TokenType: string(tt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses the token, checks the signature and expiry, and rejects
// tokens whose class does not match want.
func (s *TokenService) Verify(token string, want ports.TokenType) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != string(want) {
		return nil, domain.ErrInvalidToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return &ports.TokenClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		IsStaff:   claims.IsStaff,
		JTI:       claims.ID,
		TokenType: want,
		ExpiresAt: expires,
	}, nil
}
