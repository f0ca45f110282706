package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenUse marks which token class a JWT belongs to. Both classes are
// signed with the same secret, so the class claim is what stops a
// refresh token from being replayed as an access token (and vice versa).
type TokenUse string

const (
	// TokenUseAccess marks short-lived tokens accepted by the auth guard.
	TokenUseAccess TokenUse = "access"

	// TokenUseRefresh marks long-lived tokens accepted only by the
	// refresh endpoint.
	TokenUseRefresh TokenUse = "refresh"
)

// RefreshTokenTTL is the fixed refresh token lifetime. Not configurable:
// there is no revocation list, so the lifetime is the blast radius of a
// leaked token.
const RefreshTokenTTL = 30 * 24 * time.Hour

// defaultAccessTTLMinutes is used when the configured TTL is missing.
const defaultAccessTTLMinutes = 15

// Claims carries the caller's identity inside a signed token. The auth
// guard trusts these verbatim after signature and expiry verification;
// there is no per-request user lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"user_id"`
	TenantID string   `json:"tenant_id"`
	Role     Role     `json:"role"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	TokenUse TokenUse `json:"token_use"`
}

// GenerateAccessToken creates a signed access token for a user.
// Access tokens are short-lived (configured TTL, minutes) and validated
// by signature only - no database hit on each request.
func GenerateAccessToken(user *User, secret string, ttlMinutes int) (string, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = defaultAccessTTLMinutes
	}
	return generateToken(user, secret, time.Duration(ttlMinutes)*time.Minute, TokenUseAccess)
}

// GenerateRefreshToken creates a signed refresh token with the fixed
// 30-day lifetime. Issued at login only, and only when the caller asked
// to stay logged in.
func GenerateRefreshToken(user *User, secret string) (string, error) {
	return generateToken(user, secret, RefreshTokenTTL, TokenUseRefresh)
}

// AccessTokenFromClaims re-issues an access token from verified refresh
// claims. This is the only minting path the refresh flow has; it cannot
// produce another refresh token.
func AccessTokenFromClaims(claims *Claims, secret string, ttlMinutes int) (string, error) {
	user := &User{
		ID:       claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
		Name:     claims.Name,
		Email:    claims.Email,
	}
	return GenerateAccessToken(user, secret, ttlMinutes)
}

func generateToken(user *User, secret string, ttl time.Duration, use TokenUse) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		Name:     user.Name,
		Email:    user.Email,
		TokenUse: use,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", use, err)
	}
	return signed, nil
}

// ParseToken validates a token of the expected class and returns its claims.
// It checks the signature, expiry, token class, and required identity
// fields. Expiry is reported as ErrTokenExpired, distinct from
// ErrTokenInvalid (bad signature, malformed structure, wrong class), so
// callers can decide whether a refresh is meaningful.
func ParseToken(tokenString, secret string, expected TokenUse) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenUse != expected {
		return nil, fmt.Errorf("%w: wrong token class", ErrTokenInvalid)
	}

	if claims.UserID == "" || claims.TenantID == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrTokenInvalid)
	}

	return claims, nil
}
