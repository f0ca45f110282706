package api

import (
	"context"

	"github.com/nulltide/stockhold/internal/inventory"
)

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) categoryEndpoints() *resourceEndpoints[inventory.Category, createCategoryRequest, updateCategoryRequest] {
	return &resourceEndpoints[inventory.Category, createCategoryRequest, updateCategoryRequest]{
		kind:   "Category",
		label:  "category",
		logger: s.logger,

		validateCreate: func(req *createCategoryRequest) string {
			if req.Name == "" {
				return "name is required"
			}
			return ""
		},
		validateUpdate: func(req *updateCategoryRequest) string {
			if req.ID == "" {
				return "id is required"
			}
			if req.Name == "" {
				return "name is required"
			}
			return ""
		},

		create: func(ctx context.Context, tenantID string, req *createCategoryRequest) (*inventory.Category, error) {
			c := &inventory.Category{
				TenantID:    tenantID,
				Name:        req.Name,
				Description: req.Description,
			}
			if err := s.categories.Create(ctx, c); err != nil {
				return nil, err
			}
			return c, nil
		},
		list: func(ctx context.Context, tenantID string) ([]inventory.Category, error) {
			return s.categories.List(ctx, tenantID)
		},
		get: func(ctx context.Context, tenantID, id string) (*inventory.Category, error) {
			return s.categories.GetByID(ctx, tenantID, id)
		},
		update: func(ctx context.Context, tenantID string, req *updateCategoryRequest) error {
			return s.categories.Update(ctx, &inventory.Category{
				ID:          req.ID,
				TenantID:    tenantID,
				Name:        req.Name,
				Description: req.Description,
			})
		},
		remove: func(ctx context.Context, tenantID, id string) error {
			return s.categories.Delete(ctx, tenantID, id)
		},
	}
}
