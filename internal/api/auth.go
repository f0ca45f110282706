package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nulltide/stockhold/internal/auth"
)

// registerRequest is the request body for POST /api/register.
type registerRequest struct {
	TenantName string `json:"tenantName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
}

// loginRequest is the request body for POST /api/login.
type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
}

// loginResponse is the response body for POST /api/login. RefreshToken
// is present only when the caller asked to stay logged in.
type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshRequest is the request body for POST /api/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// handleRegister creates a tenant and its owning user in one transaction.
// No token is issued; the caller logs in separately. Any failure -
// duplicate email included - surfaces as a generic server error so the
// register endpoint cannot be used to probe which emails exist.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("register failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("register failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	user := &auth.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         auth.RoleTenantOwner,
	}

	if err := s.users.Register(r.Context(), req.TenantName, user); err != nil {
		s.logger.Error("register failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID, "tenant_id", user.TenantID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

// handleLogin authenticates a user and returns tokens.
// An unknown email and a wrong password produce the identical response,
// so the endpoint cannot be used to enumerate accounts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, "Invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		writeUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := auth.GenerateAccessToken(user, s.cfg.Security.JWT.Secret, s.cfg.Security.JWT.AccessTokenTTL)
	if err != nil {
		s.logger.Error("login failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	resp := loginResponse{Token: token}
	if req.StayLoggedIn {
		refresh, err := auth.GenerateRefreshToken(user, s.cfg.Security.JWT.Secret)
		if err != nil {
			s.logger.Error("login failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
			writeInternalError(w, "Server Error")
			return
		}
		resp.RefreshToken = refresh
	}

	s.logger.Info("user logged in", "user_id", user.ID, "tenant_id", user.TenantID, "stay_logged_in", req.StayLoggedIn)
	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh exchanges a valid refresh token for a new access token.
// It never issues another refresh token, and any verification failure
// sends the caller back to login.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.RefreshToken == "" {
		writeBadRequest(w, "Refresh Token Missing")
		return
	}

	claims, err := auth.ParseToken(req.RefreshToken, s.cfg.Security.JWT.Secret, auth.TokenUseRefresh)
	if err != nil {
		writeUnauthorized(w, "Refresh Token Expired or Invalid")
		return
	}

	token, err := auth.AccessTokenFromClaims(claims, s.cfg.Security.JWT.Secret, s.cfg.Security.JWT.AccessTokenTTL)
	if err != nil {
		s.logger.Error("refresh failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"newAccessToken": token})
}

// handleMe returns the caller's identity from the verified token claims.
// No user lookup happens here: the claims were embedded at issuance and
// are trusted until the token expires.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":   claims.UserID,
		"name":      claims.Name,
		"email":     claims.Email,
		"tenant_id": claims.TenantID,
		"role":      claims.Role,
	})
}
