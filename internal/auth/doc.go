// Package auth provides authentication for Stockhold.
//
// It implements:
//   - Argon2id password hashing (OWASP recommendation)
//   - JWT access and refresh tokens carrying the caller's identity
//     (user_id, tenant_id, role, name) as claims
//   - Atomic tenant + owner registration in a single transaction
//
// Tokens come in two classes marked by a token_use claim: short-lived
// access tokens accepted by the API auth guard, and long-lived refresh
// tokens accepted only by the refresh endpoint. A refresh token can mint
// a new access token but never another refresh token, which bounds the
// chain of trust to the original login. There is no revocation list;
// a leaked refresh token stays valid until its fixed expiry.
package auth
