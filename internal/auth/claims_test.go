package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

func testUser() *User {
	return &User{
		ID:       "usr-11111111",
		Email:    "alice@example.com",
		Name:     "Alice",
		TenantID: "tnt-22222222",
		Role:     RoleTenantOwner,
	}
}

func TestGenerateAccessToken_ParsesBack(t *testing.T) {
	user := testUser()

	token, err := GenerateAccessToken(user, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseToken(token, testSecret, TokenUseAccess)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.TenantID != user.TenantID {
		t.Errorf("TenantID = %q, want %q", claims.TenantID, user.TenantID)
	}
	if claims.Role != RoleTenantOwner {
		t.Errorf("Role = %q, want %q", claims.Role, RoleTenantOwner)
	}
	if claims.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", claims.Name)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", claims.Email)
	}
	if claims.TokenUse != TokenUseAccess {
		t.Errorf("TokenUse = %q, want %q", claims.TokenUse, TokenUseAccess)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testUser(), testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = ParseToken(token, "another-secret-that-is-also-32-chars!", TokenUseAccess)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := generateToken(testUser(), testSecret, -time.Minute, TokenUseAccess)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	_, err = ParseToken(token, testSecret, TokenUseAccess)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
	if errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expired token also reported as ErrTokenInvalid: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret, TokenUseAccess)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

// A refresh token must never pass the access guard, and an access token
// must never drive the refresh flow.
func TestParseToken_ClassMismatch(t *testing.T) {
	user := testUser()

	refresh, err := GenerateRefreshToken(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := ParseToken(refresh, testSecret, TokenUseAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("refresh token as access: error = %v, want ErrTokenInvalid", err)
	}

	access, err := GenerateAccessToken(user, testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ParseToken(access, testSecret, TokenUseRefresh); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("access token as refresh: error = %v, want ErrTokenInvalid", err)
	}
}

func TestAccessTokenFromClaims(t *testing.T) {
	user := testUser()

	refresh, err := GenerateRefreshToken(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	refreshClaims, err := ParseToken(refresh, testSecret, TokenUseRefresh)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	access, err := AccessTokenFromClaims(refreshClaims, testSecret, 15)
	if err != nil {
		t.Fatalf("AccessTokenFromClaims: %v", err)
	}

	claims, err := ParseToken(access, testSecret, TokenUseAccess)
	if err != nil {
		t.Fatalf("ParseToken(access): %v", err)
	}

	if claims.UserID != user.ID || claims.TenantID != user.TenantID {
		t.Errorf("identity = (%q,%q), want (%q,%q)",
			claims.UserID, claims.TenantID, user.ID, user.TenantID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
}

func TestRefreshToken_Lifetime(t *testing.T) {
	token, err := GenerateRefreshToken(testUser(), testSecret)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ParseToken(token, testSecret, TokenUseRefresh)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < RefreshTokenTTL-time.Minute || ttl > RefreshTokenTTL {
		t.Errorf("refresh TTL = %v, want about %v", ttl, RefreshTokenTTL)
	}
}
