package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nulltide/stockhold/internal/infrastructure/logging"
	"github.com/nulltide/stockhold/internal/inventory"
)

// resourceEndpoints bundles the five CRUD handlers for one tenant-scoped
// resource kind. The flow is identical for every kind: decode, validate,
// force the caller's tenant from verified claims (never from the request
// body), call the store, and map store errors to status codes. The
// per-kind differences - required fields, update field set, the store
// behind it - are injected as functions.
//
// Tenant isolation lives one layer down: the injected store operations
// take the tenant ID as an explicit argument and conjoin it with every
// query, so a cross-tenant id behaves exactly like a nonexistent one.
type resourceEndpoints[Rec any, CreateReq any, UpdateReq any] struct {
	// kind is the capitalised resource name used in client messages
	// ("Category not found"). label is the JSON key for created records.
	kind  string
	label string

	logger *logging.Logger

	// validateCreate and validateUpdate return a non-empty message for a
	// 400 response. Validation is presence-based: a field explicitly set
	// to its zero value (stock 0, empty description) is valid.
	validateCreate func(*CreateReq) string
	validateUpdate func(*UpdateReq) string

	create func(ctx context.Context, tenantID string, req *CreateReq) (*Rec, error)
	list   func(ctx context.Context, tenantID string) ([]Rec, error)
	get    func(ctx context.Context, tenantID, id string) (*Rec, error)
	update func(ctx context.Context, tenantID string, req *UpdateReq) error
	remove func(ctx context.Context, tenantID, id string) error
}

// deleteRequest is the shared body shape for DELETE requests: the id
// travels in the body, matching the rest of the write surface.
type deleteRequest struct {
	ID string `json:"id"`
}

// handleCreate inserts a new record under the caller's tenant.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if msg := e.validateCreate(&req); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	claims := claimsFromContext(r.Context())
	rec, err := e.create(r.Context(), claims.TenantID, &req)
	if err != nil {
		e.logger.Error("create failed", "resource", e.label, "error", err, "tenant_id", claims.TenantID)
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": e.kind + " created successfully",
		e.label:   rec,
	})
}

// handleList returns all of the caller's records.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) handleList(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	recs, err := e.list(r.Context(), claims.TenantID)
	if err != nil {
		e.logger.Error("list failed", "resource", e.label, "error", err, "tenant_id", claims.TenantID)
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// handleGet returns a single record by path id.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims := claimsFromContext(r.Context())

	rec, err := e.get(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeNotFound(w, e.kind+" not found")
			return
		}
		e.logger.Error("get failed", "resource", e.label, "error", err, "tenant_id", claims.TenantID)
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleUpdate replaces a record's updatable field set, matched by
// {id, tenant}.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if msg := e.validateUpdate(&req); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	claims := claimsFromContext(r.Context())
	if err := e.update(r.Context(), claims.TenantID, &req); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeNotFound(w, e.kind+" not found")
			return
		}
		e.logger.Error("update failed", "resource", e.label, "error", err, "tenant_id", claims.TenantID)
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": e.kind + " updated successfully"})
}

// handleDelete removes a record by body id. Deleting an id that is
// already gone reports NotFound again, never an error.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	claims := claimsFromContext(r.Context())
	if err := e.remove(r.Context(), claims.TenantID, req.ID); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeNotFound(w, e.kind+" not found")
			return
		}
		e.logger.Error("delete failed", "resource", e.label, "error", err, "tenant_id", claims.TenantID)
		writeInternalError(w, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": e.kind + " deleted successfully"})
}

// mount registers the five handlers on a subrouter.
func (e *resourceEndpoints[Rec, CreateReq, UpdateReq]) mount(r chi.Router) {
	r.Get("/", e.handleList)
	r.Post("/", e.handleCreate)
	r.Put("/", e.handleUpdate)
	r.Delete("/", e.handleDelete)
	r.Get("/{id}", e.handleGet)
}
