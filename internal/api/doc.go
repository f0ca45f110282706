// Package api provides the HTTP REST API for the stockhold inventory
// backend.
//
// It exposes tenant registration, login and token refresh, and the
// per-tenant category and product CRUD surface. Every protected route
// derives its tenant scope from verified JWT claims, never from the
// request body.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
