package api

import (
	"context"

	"github.com/nulltide/stockhold/internal/inventory"
)

type createProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Barcode     *string  `json:"barcode"`
	CategoryID  *string  `json:"category_id"`
	Stock       *int     `json:"stock"`
}

type updateProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"category_id"`
	Stock       *int     `json:"stock"`
}

func (s *Server) productEndpoints() *resourceEndpoints[inventory.Product, createProductRequest, updateProductRequest] {
	return &resourceEndpoints[inventory.Product, createProductRequest, updateProductRequest]{
		kind:   "Product",
		label:  "product",
		logger: s.logger,

		validateCreate: func(req *createProductRequest) string {
			if req.Name == "" {
				return "name is required"
			}
			if req.Price == nil {
				return "price is required"
			}
			return ""
		},
		validateUpdate: func(req *updateProductRequest) string {
			if req.ID == "" {
				return "id is required"
			}
			if req.Name == "" {
				return "name is required"
			}
			if req.Price == nil {
				return "price is required"
			}
			return ""
		},

		create: func(ctx context.Context, tenantID string, req *createProductRequest) (*inventory.Product, error) {
			p := &inventory.Product{
				TenantID:    tenantID,
				Name:        req.Name,
				Description: req.Description,
				Price:       *req.Price,
				Barcode:     req.Barcode,
				CategoryID:  req.CategoryID,
			}
			if req.Stock != nil {
				p.Stock = *req.Stock
			}
			if err := s.products.Create(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		},
		list: func(ctx context.Context, tenantID string) ([]inventory.Product, error) {
			return s.products.List(ctx, tenantID)
		},
		get: func(ctx context.Context, tenantID, id string) (*inventory.Product, error) {
			return s.products.GetByID(ctx, tenantID, id)
		},
		update: func(ctx context.Context, tenantID string, req *updateProductRequest) error {
			p := &inventory.Product{
				ID:          req.ID,
				TenantID:    tenantID,
				Name:        req.Name,
				Description: req.Description,
				Price:       *req.Price,
				CategoryID:  req.CategoryID,
			}
			if req.Stock != nil {
				p.Stock = *req.Stock
			}
			return s.products.Update(ctx, p)
		},
		remove: func(ctx context.Context, tenantID, id string) error {
			return s.products.Delete(ctx, tenantID, id)
		},
	}
}
