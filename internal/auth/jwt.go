package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the account type embedded in access tokens. Route groups for the
// admin and owner areas are gated on it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether s is a known account role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// Token types carried in the "typ" claim, so an access token cannot be
// replayed against the refresh endpoint and vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims defines the JWT claims we embed in our tokens.
type Claims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTManager manages JWT access and refresh token creation and validation.
type JWTManager struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(secret string, ttl, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken creates a signed JWT for the given user.
func (m *JWTManager) GenerateAccessToken(userID, email string, role Role) (string, error) {
	return m.generate(userID, email, role, tokenTypeAccess, m.ttl)
}

// GenerateRefreshToken creates the longer-lived token clients exchange for
// a fresh access token.
func (m *JWTManager) GenerateRefreshToken(userID, email string, role Role) (string, error) {
	return m.generate(userID, email, role, tokenTypeRefresh, m.refreshTTL)
}

func (m *JWTManager) generate(userID, email string, role Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}

	return signed, nil
}

// ParseAndValidate validates an access token and returns the parsed claims.
func (m *JWTManager) ParseAndValidate(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, tokenTypeAccess)
}

// ParseRefreshToken validates a refresh token and returns the parsed claims.
func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, tokenTypeRefresh)
}

func (m *JWTManager) parse(tokenStr, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure token is signed using HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %T", t.Method)
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid jwt token")
	}
	if claims.TokenType != wantType {
		return nil, errors.New("wrong jwt token type")
	}

	return claims, nil
}
