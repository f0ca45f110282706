package auth

import (
	"errors"
	"time"
)

// Role represents an authorisation tier within a tenant.
type Role string

const (
	// RoleTenantOwner is the first user of a tenant, created at
	// registration. The only role the registration flow assigns; carried
	// in token claims for forward use (no role-based branching exists yet).
	RoleTenantOwner Role = "tenant_owner"
)

// Tenant is an isolated customer account. All business data is
// partitioned by tenant_id.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents an authenticated account belonging to a tenant.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	Name         string    `json:"name"`
	TenantID     string    `json:"tenant_id"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
)
